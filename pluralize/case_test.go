package pluralize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestoreCase(t *testing.T) {
	tests := []struct {
		name   string
		source string
		token  string
		want   string
	}{
		{"exact match", "Hello", "Hello", "Hello"},
		{"lowercase source", "house", "HOUSES", "houses"},
		{"uppercase source", "WHISKY", "whiskies", "WHISKIES"},
		{"title source", "Person", "people", "People"},
		{"title keeps inner capitals", "Title", "multi Word", "Multi Word"},
		{"mixed source falls back to lower", "iPhone", "IPHONES", "iphones"},
		{"empty source", "", "Token", "token"},
		{"empty token", "House", "", ""},
		{"both empty", "", "", ""},
		{"non letters count as lowercase", "123", "ABC", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, restoreCase(tt.source, tt.token))
		})
	}
}

func TestRestoreRuleCase(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		text    string
		atStart bool
		want    string
	}{
		{"lowercase word", "house", "S", false, "s"},
		{"uppercase word", "HOUSE", "s", false, "S"},
		{"title word keeps suffix", "House", "s", false, "s"},
		{"title word capitalizes at start", "Ox", "oxen", true, "Oxen"},
		{"inner capital keeps suffix", "PhD", "s", false, "s"},
		{"inner capital keeps captured case", "TeX", "Xes", false, "Xes"},
		{"lowercase start lowers text", "eBOX", "Xes", false, "xes"},
		{"empty word", "", "S", false, "s"},
		{"empty text", "House", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, restoreRuleCase(tt.word, tt.text, tt.atStart))
		})
	}
}
