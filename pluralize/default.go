package pluralize

import "sync"

var defaultEngine = sync.OnceValue(func() *Engine {
	return New()
})

// Default returns the shared engine behind the package-level functions.
// It is seeded with the built-in tables the first time it is requested.
func Default() *Engine {
	return defaultEngine()
}

// Pluralize inflects word for count using the default engine.
func Pluralize(word string, count int, includeCount bool) string {
	return Default().Pluralize(word, count, includeCount)
}

// Plural returns the plural form of word using the default engine.
func Plural(word string) string {
	return Default().Plural(word)
}

// Singular returns the singular form of word using the default engine.
func Singular(word string) string {
	return Default().Singular(word)
}

// IsPlural reports whether word is plural according to the default engine.
func IsPlural(word string) bool {
	return Default().IsPlural(word)
}

// IsSingular reports whether word is singular according to the default engine.
func IsSingular(word string) bool {
	return Default().IsSingular(word)
}

// AddIrregularRule adds an irregular pair to the default engine.
func AddIrregularRule(singular, plural string) {
	Default().AddIrregularRule(singular, plural)
}

// AddPluralRule adds a plural rule to the default engine.
func AddPluralRule(pattern, replacement string) error {
	return Default().AddPluralRule(pattern, replacement)
}

// AddSingularRule adds a singular rule to the default engine.
func AddSingularRule(pattern, replacement string) error {
	return Default().AddSingularRule(pattern, replacement)
}

// AddUncountableRule adds an uncountable word or pattern to the default engine.
func AddUncountableRule(rule UncountableRule) error {
	return Default().AddUncountableRule(rule)
}
