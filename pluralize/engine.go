// Package pluralize inflects English words between singular and plural form.
//
// Features:
//   - Count-driven inflection ("1 item", "3 items")
//   - Irregular pairs, uncountable words and regular-expression rules
//   - Case preservation ("HOUSE" -> "HOUSES", "House" -> "Houses")
//   - Runtime rule registration that overrides the built-in tables
//   - Independent engines, safe for concurrent use
//   - TOML rule bundles for loading extra vocabulary
//
// Example:
//
//	engine := pluralize.New()
//
//	engine.Pluralize("House", 2, true)   // "2 Houses"
//	engine.Pluralize("Houses", 1, true)  // "1 House"
//	engine.Pluralize("sheep", 5, false)  // "sheep"
//
//	// Rules added later win over the built-in ones.
//	engine.AddIrregularRule("octopus", "octopodes")
//	if err := engine.AddPluralRule(`(?i)(ox)$`, "${1}en"); err != nil {
//	    log.Fatal(err)
//	}
//
// The package-level functions use a shared engine built on first use.
package pluralize

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Engine owns a rule store and inflects words against it.
// It is safe for concurrent use. Rules can be added at any time; a rule
// added later takes precedence over every earlier rule of its kind.
type Engine struct {
	name     string
	store    *store
	observer Observer
}

// Stats reports the size of each rule collection in an Engine.
type Stats struct {
	Irregular     int
	PluralRules   int
	SingularRules int
	Uncountable   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithName labels the engine in observer callbacks, typically with a locale code.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// WithObserver sets an observer for this engine only, overriding the
// package-level observer.
func WithObserver(obs Observer) Option {
	return func(e *Engine) {
		e.observer = obs
	}
}

// New creates an engine seeded with the built-in English tables.
// It panics if a built-in rule fails to compile.
func New(opts ...Option) *Engine {
	e := NewEmpty(opts...)
	e.seed()
	return e
}

// NewEmpty creates an engine with no rules at all. Every word passes
// through unchanged until rules are added.
func NewEmpty(opts ...Option) *Engine {
	e := &Engine{
		name:  "default",
		store: newStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the label given with WithName.
func (e *Engine) Name() string {
	return e.name
}

// Stats returns the current size of each rule collection.
func (e *Engine) Stats() Stats {
	return e.store.counts()
}

// Pluralize returns word inflected for count. A count of exactly 1 yields
// the singular form; anything else, zero and negatives included, yields the
// plural. With includeCount the result is prefixed with the count.
//
// Example:
//
//	engine.Pluralize("cat", 3, true)  // "3 cats"
//	engine.Pluralize("cat", 1, true)  // "1 cat"
//	engine.Pluralize("cats", 0, false) // "cats"
func (e *Engine) Pluralize(word string, count int, includeCount bool) string {
	var inflected string
	if count == 1 {
		inflected = e.Singular(word)
	} else {
		inflected = e.Plural(word)
	}

	if includeCount {
		return strconv.Itoa(count) + " " + inflected
	}
	return inflected
}

// Plural returns the plural form of word.
func (e *Engine) Plural(word string) string {
	return e.observe(TowardPlural, word)
}

// Singular returns the singular form of word.
func (e *Engine) Singular(word string) string {
	return e.observe(TowardSingular, word)
}

// IsPlural reports whether word is already in plural form.
func (e *Engine) IsPlural(word string) bool {
	return e.check(TowardPlural, word)
}

// IsSingular reports whether word is already in singular form.
func (e *Engine) IsSingular(word string) bool {
	return e.check(TowardSingular, word)
}

// AddIrregularRule registers an exact singular/plural pair. It replaces any
// earlier pair sharing either word.
func (e *Engine) AddIrregularRule(singular, plural string) {
	e.store.addIrregular([2]string{singular, plural})
	e.notifyRule("irregular", nil)
}

// AddPluralRule registers a pattern used to build plurals. The replacement
// may reference the whole match with $0 and capture groups with $1..$9 or
// ${n}. An *InvalidPatternError is returned if pattern does not compile.
func (e *Engine) AddPluralRule(pattern, replacement string) error {
	return e.addRule(TowardPlural, pattern, replacement)
}

// AddSingularRule registers a pattern used to build singulars. See
// AddPluralRule for the replacement syntax.
func (e *Engine) AddSingularRule(pattern, replacement string) error {
	return e.addRule(TowardSingular, pattern, replacement)
}

// AddUncountableRule registers a word or pattern that is never inflected.
// A Word is matched case-insensitively against the whole input. A Pattern
// is added as a rule in both directions that maps a match onto itself.
func (e *Engine) AddUncountableRule(u UncountableRule) error {
	var err error
	switch u := u.(type) {
	case Word:
		e.store.addUncountable(string(u))
	case Pattern:
		var r rule
		if r, err = compileRule(string(u), "$0"); err == nil {
			e.store.addIdentity(r)
		}
	}
	e.notifyRule("uncountable", err)
	return err
}

func (e *Engine) addRule(d Direction, pattern, replacement string) error {
	r, err := compileRule(pattern, replacement)
	if err == nil {
		e.store.addRules(d, r)
	}
	e.notifyRule(d.String(), err)
	return err
}

func (e *Engine) observe(d Direction, word string) string {
	obs := e.currentObserver()
	if obs == nil {
		return e.inflect(d, word)
	}

	start := time.Now()
	result := e.inflect(d, word)
	obs.OnInflection(context.Background(), e.name, d.String(), word, time.Since(start))
	return result
}

// inflect turns word toward d: irregular pairs first, then the uncountable
// set, then pattern rules from newest to oldest.
func (e *Engine) inflect(d Direction, word string) string {
	v := e.store.snapshot(d)
	token := strings.ToLower(word)

	if _, ok := v.keep[token]; ok {
		return restoreCase(word, token)
	}

	if target, ok := v.replace[token]; ok {
		return restoreCase(word, target)
	}

	return sanitize(token, word, v)
}

// sanitize runs the pattern rules of v against word. Words that are empty,
// uncountable or matched by no rule come back unchanged.
func sanitize(token, word string, v view) string {
	if token == "" {
		return word
	}
	if _, ok := v.uncountable[token]; ok {
		return word
	}

	for i := len(v.rules) - 1; i >= 0; i-- {
		if out, ok := v.rules[i].apply(word); ok {
			return out
		}
	}

	return word
}

func (e *Engine) check(d Direction, word string) bool {
	v := e.store.snapshot(d)
	token := strings.ToLower(word)

	if _, ok := v.keep[token]; ok {
		return true
	}
	if _, ok := v.replace[token]; ok {
		return false
	}
	return sanitize(token, token, v) == token
}

func (e *Engine) seed() {
	e.store.addIrregular(defaultIrregulars...)

	plural := make([]rule, 0, len(defaultPluralRules))
	for _, r := range defaultPluralRules {
		plural = append(plural, mustRule(r[0], r[1]))
	}
	e.store.addRules(TowardPlural, plural...)

	singular := make([]rule, 0, len(defaultSingularRules))
	for _, r := range defaultSingularRules {
		singular = append(singular, mustRule(r[0], r[1]))
	}
	e.store.addRules(TowardSingular, singular...)

	e.store.addUncountable(defaultUncountableWords...)
	for _, p := range defaultUncountablePatterns {
		e.store.addIdentity(mustRule(p, "$0"))
	}
}

// UncountableRule is either a Word or a Pattern.
type UncountableRule interface {
	uncountable()
}

// Word is a literal uncountable word, compared case-insensitively.
type Word string

// Pattern is a regular expression matching uncountable words.
type Pattern string

func (Word) uncountable()    {}
func (Pattern) uncountable() {}
