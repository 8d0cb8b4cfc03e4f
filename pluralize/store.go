package pluralize

import (
	"strings"
	"sync"
)

// Direction selects which form a word is inflected toward.
type Direction int

const (
	// TowardSingular inflects a word to its singular form.
	TowardSingular Direction = iota
	// TowardPlural inflects a word to its plural form.
	TowardPlural
)

func (d Direction) String() string {
	switch d {
	case TowardSingular:
		return "singular"
	case TowardPlural:
		return "plural"
	default:
		return "unknown"
	}
}

// irregulars holds the two irregular maps. A published value is never
// mutated; writers build a new one.
type irregulars struct {
	singles map[string]string // singular -> plural
	plurals map[string]string // plural -> singular
}

func (ir *irregulars) clone() *irregulars {
	next := &irregulars{
		singles: make(map[string]string, len(ir.singles)+1),
		plurals: make(map[string]string, len(ir.plurals)+1),
	}
	for k, v := range ir.singles {
		next.singles[k] = v
	}
	for k, v := range ir.plurals {
		next.plurals[k] = v
	}
	return next
}

// put inserts a pair into both maps. Re-pointing a singular at a new plural
// drops the old plural's reverse entry. Several singulars may share one
// plural ("he", "she" -> "they"); the plural maps back to the latest.
func (ir *irregulars) put(singular, plural string) {
	if old, ok := ir.singles[singular]; ok && old != plural && ir.plurals[old] == singular {
		delete(ir.plurals, old)
	}
	ir.singles[singular] = plural
	ir.plurals[plural] = singular
}

// store is the rule store behind an Engine. Each collection has its own
// lock; readers copy out a reference under the read lock and never hold it
// while matching.
type store struct {
	irregularMu sync.RWMutex
	irregular   *irregulars

	pluralMu sync.RWMutex
	plural   []rule

	singularMu sync.RWMutex
	singular   []rule

	uncountableMu sync.RWMutex
	uncountable   map[string]struct{}
}

func newStore() *store {
	return &store{
		irregular: &irregulars{
			singles: map[string]string{},
			plurals: map[string]string{},
		},
		uncountable: map[string]struct{}{},
	}
}

func (s *store) addIrregular(pairs ...[2]string) {
	s.irregularMu.Lock()
	defer s.irregularMu.Unlock()

	next := s.irregular.clone()
	for _, p := range pairs {
		next.put(strings.ToLower(p[0]), strings.ToLower(p[1]))
	}
	s.irregular = next
}

func (s *store) addRules(d Direction, rules ...rule) {
	switch d {
	case TowardPlural:
		s.pluralMu.Lock()
		s.plural = append(s.plural, rules...)
		s.pluralMu.Unlock()
	case TowardSingular:
		s.singularMu.Lock()
		s.singular = append(s.singular, rules...)
		s.singularMu.Unlock()
	}
}

// addIdentity appends r to both rule lists. Both locks are held so no
// reader sees the rule in one direction only.
func (s *store) addIdentity(r rule) {
	s.pluralMu.Lock()
	defer s.pluralMu.Unlock()
	s.singularMu.Lock()
	defer s.singularMu.Unlock()

	s.plural = append(s.plural, r)
	s.singular = append(s.singular, r)
}

func (s *store) addUncountable(words ...string) {
	s.uncountableMu.Lock()
	defer s.uncountableMu.Unlock()

	next := make(map[string]struct{}, len(s.uncountable)+len(words))
	for w := range s.uncountable {
		next[w] = struct{}{}
	}
	for _, w := range words {
		next[strings.ToLower(w)] = struct{}{}
	}
	s.uncountable = next
}

// view is a read-only snapshot of the store for one direction.
type view struct {
	// keep holds words already in the target form.
	keep map[string]string
	// replace maps a source form to its target form.
	replace     map[string]string
	rules       []rule
	uncountable map[string]struct{}
}

func (s *store) snapshot(d Direction) view {
	var v view

	s.irregularMu.RLock()
	ir := s.irregular
	s.irregularMu.RUnlock()

	switch d {
	case TowardPlural:
		v.keep, v.replace = ir.plurals, ir.singles
		s.pluralMu.RLock()
		v.rules = s.plural[:len(s.plural):len(s.plural)]
		s.pluralMu.RUnlock()
	default:
		v.keep, v.replace = ir.singles, ir.plurals
		s.singularMu.RLock()
		v.rules = s.singular[:len(s.singular):len(s.singular)]
		s.singularMu.RUnlock()
	}

	s.uncountableMu.RLock()
	v.uncountable = s.uncountable
	s.uncountableMu.RUnlock()

	return v
}

// counts reports the size of each collection.
func (s *store) counts() Stats {
	s.irregularMu.RLock()
	irregular := len(s.irregular.singles)
	s.irregularMu.RUnlock()

	s.pluralMu.RLock()
	plural := len(s.plural)
	s.pluralMu.RUnlock()

	s.singularMu.RLock()
	singular := len(s.singular)
	s.singularMu.RUnlock()

	s.uncountableMu.RLock()
	uncountable := len(s.uncountable)
	s.uncountableMu.RUnlock()

	return Stats{
		Irregular:     irregular,
		PluralRules:   plural,
		SingularRules: singular,
		Uncountable:   uncountable,
	}
}
