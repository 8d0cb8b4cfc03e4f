package pluralize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// InvalidPatternError is returned when a rule pattern does not compile.
// The engine is left untouched when it is returned.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("pluralize: invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// rule is a compiled pattern plus the replacement it expands to.
type rule struct {
	pattern     *regexp.Regexp
	replacement template
}

func compileRule(pattern, replacement string) (rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return rule{}, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return rule{pattern: re, replacement: parseTemplate(replacement)}, nil
}

// mustRule compiles a built-in rule. A failure means the default tables are
// corrupt, so it panics.
func mustRule(pattern, replacement string) rule {
	r, err := compileRule(pattern, replacement)
	if err != nil {
		panic(fmt.Sprintf("pluralize: bad default rule: %v", err))
	}
	return r
}

// apply rewrites the leftmost match of the rule in word. The second result
// is false when the rule does not match.
func (r rule) apply(word string) (string, bool) {
	loc := r.pattern.FindStringSubmatchIndex(word)
	if loc == nil {
		return "", false
	}

	start, end := loc[0], loc[1]
	replaced := restoreRuleCase(word, r.replacement.expand(word, loc), start == 0)

	return word[:start] + replaced + word[end:], true
}

// segment is either a literal run of template text or a reference to a
// capture group. group is -1 for literals.
type segment struct {
	literal string
	group   int
}

// template is a replacement string split into literal and group segments.
// Captured text is spliced in by index, so a capture holding "$1" is never
// read as another marker.
type template struct {
	source   string
	segments []segment
}

// parseTemplate splits a replacement into segments. "$n" (one digit) and
// "${n}" reference capture groups. Any other "$" is dropped together with
// the character after it.
func parseTemplate(s string) template {
	t := template{source: s}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String(), group: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '$' {
			_, size := utf8.DecodeRuneInString(s[i:])
			lit.WriteString(s[i : i+size])
			i += size
			continue
		}

		rest := s[i+1:]
		if len(rest) > 0 && isDigit(rest[0]) {
			flush()
			t.segments = append(t.segments, segment{group: int(rest[0] - '0')})
			i += 2
			continue
		}

		if strings.HasPrefix(rest, "{") {
			if closing := strings.IndexByte(rest, '}'); closing > 1 {
				if n, err := strconv.Atoi(rest[1:closing]); err == nil && n >= 0 {
					flush()
					t.segments = append(t.segments, segment{group: n})
					i += closing + 2
					continue
				}
			}
		}

		// Unresolved marker: drop "$" and the character that follows.
		i++
		if i < len(s) {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
	}
	flush()

	return t
}

// expand builds the replacement text for a match described by loc, the
// index pairs returned by FindStringSubmatchIndex. Groups that did not take
// part in the match, or do not exist, expand to nothing.
func (t template) expand(word string, loc []int) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.group < 0 {
			b.WriteString(seg.literal)
			continue
		}
		i := 2 * seg.group
		if i+1 >= len(loc) || loc[i] < 0 {
			continue
		}
		b.WriteString(word[loc[i]:loc[i+1]])
	}
	return b.String()
}

func (t template) String() string {
	return t.source
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
