package pluralize

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Bundle is a set of rules loaded from a TOML document.
//
// Bundle files (e.g., fr.toml):
//
//	uncountable = ["cash"]
//	uncountable_patterns = ["(?i)pox$"]
//
//	[[irregular]]
//	singular = "octopus"
//	plural = "octopodes"
//
//	[[plural]]
//	pattern = "(?i)(quiz)$"
//	replacement = "$1zes"
//
//	[[singular]]
//	pattern = "(?i)(quiz)zes$"
//	replacement = "$1"
type Bundle struct {
	Uncountable         []string        `toml:"uncountable"`
	UncountablePatterns []string        `toml:"uncountable_patterns"`
	Irregular           []IrregularPair `toml:"irregular"`
	Plural              []RuleSpec      `toml:"plural"`
	Singular            []RuleSpec      `toml:"singular"`
}

// IrregularPair is one singular/plural pair in a Bundle.
type IrregularPair struct {
	Singular string `toml:"singular"`
	Plural   string `toml:"plural"`
}

// RuleSpec is an uncompiled pattern rule in a Bundle.
type RuleSpec struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// ParseBundle decodes a TOML rule bundle. Unknown keys are rejected so a
// typo does not silently drop rules.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	md, err := toml.Decode(string(data), &b)
	if err != nil {
		return nil, fmt.Errorf("pluralize: parse bundle: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &b, nil
}

// DecodeBundle reads and decodes a TOML rule bundle from r.
func DecodeBundle(r io.Reader) (*Bundle, error) {
	var b Bundle
	md, err := toml.NewDecoder(r).Decode(&b)
	if err != nil {
		return nil, fmt.Errorf("pluralize: parse bundle: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &b, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("pluralize: unknown bundle keys: %s", strings.Join(keys, ", "))
}

// Validate compiles every pattern in the bundle and checks irregular pairs
// for empty words.
func (b *Bundle) Validate() error {
	_, err := b.compile()
	return err
}

// Apply adds the bundle's rules to e in file order. Nothing is added if any
// pattern fails to compile.
func (b *Bundle) Apply(e *Engine) error {
	c, err := b.compile()
	if err != nil {
		e.notifyRule("bundle", err)
		return err
	}

	if len(c.irregular) > 0 {
		e.store.addIrregular(c.irregular...)
	}
	if len(c.plural) > 0 {
		e.store.addRules(TowardPlural, c.plural...)
	}
	if len(c.singular) > 0 {
		e.store.addRules(TowardSingular, c.singular...)
	}
	if len(b.Uncountable) > 0 {
		e.store.addUncountable(b.Uncountable...)
	}
	for _, r := range c.identity {
		e.store.addIdentity(r)
	}

	e.notifyRule("bundle", nil)
	return nil
}

// Len returns the total number of entries in the bundle.
func (b *Bundle) Len() int {
	return len(b.Uncountable) + len(b.UncountablePatterns) + len(b.Irregular) + len(b.Plural) + len(b.Singular)
}

type compiledBundle struct {
	irregular [][2]string
	plural    []rule
	singular  []rule
	identity  []rule
}

func (b *Bundle) compile() (*compiledBundle, error) {
	c := &compiledBundle{}

	for i, p := range b.Irregular {
		if p.Singular == "" || p.Plural == "" {
			return nil, fmt.Errorf("pluralize: irregular[%d]: singular and plural are required", i)
		}
		c.irregular = append(c.irregular, [2]string{p.Singular, p.Plural})
	}

	for i, s := range b.Plural {
		r, err := compileRule(s.Pattern, s.Replacement)
		if err != nil {
			return nil, fmt.Errorf("plural[%d]: %w", i, err)
		}
		c.plural = append(c.plural, r)
	}

	for i, s := range b.Singular {
		r, err := compileRule(s.Pattern, s.Replacement)
		if err != nil {
			return nil, fmt.Errorf("singular[%d]: %w", i, err)
		}
		c.singular = append(c.singular, r)
	}

	for i, p := range b.UncountablePatterns {
		r, err := compileRule(p, "$0")
		if err != nil {
			return nil, fmt.Errorf("uncountable_patterns[%d]: %w", i, err)
		}
		c.identity = append(c.identity, r)
	}

	return c, nil
}
