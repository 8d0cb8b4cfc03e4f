package pluralize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// restoreCase applies the letter-case pattern of source to token.
//
// The checks run in order and the first hit wins:
//   - token equal to source is returned untouched
//   - an all-lowercase source lowercases the token ("hello")
//   - an all-uppercase source uppercases the token ("WHISKY")
//   - a source starting with an uppercase letter uppercases the first
//     letter of the token and leaves the rest alone ("Title")
//   - anything else lowercases the token
func restoreCase(source, token string) string {
	if source == token {
		return token
	}

	if source == strings.ToLower(source) {
		return strings.ToLower(token)
	}

	if source == strings.ToUpper(source) {
		return strings.ToUpper(token)
	}

	if first, _ := utf8.DecodeRuneInString(source); first != utf8.RuneError && unicode.IsUpper(first) {
		if head, size := utf8.DecodeRuneInString(token); head != utf8.RuneError {
			return string(unicode.ToUpper(head)) + token[size:]
		}
	}

	return strings.ToLower(token)
}

// restoreRuleCase applies the case of the whole word to text produced by a
// rule. All-lowercase and all-uppercase words work as in restoreCase. For
// any other word the text is kept as written when the word starts with a
// capital ("PhD" gives "PhDs"), and lowercased when it does not ("eBOX"
// gives "eBOxes"). Text that replaces the start of a capitalized word gets
// its first letter uppercased.
func restoreRuleCase(word, text string, atStart bool) string {
	switch {
	case word == strings.ToLower(word):
		return strings.ToLower(text)
	case word == strings.ToUpper(word):
		return strings.ToUpper(text)
	}

	first, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return strings.ToLower(text)
	}
	if !atStart {
		return text
	}
	if head, size := utf8.DecodeRuneInString(text); head != utf8.RuneError {
		return string(unicode.ToUpper(head)) + text[size:]
	}
	return text
}
