package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "sentence with trailing period", in: "Koira juoksee nopeasti.", want: []string{"Koira", "juoksee", "nopeasti"}},
		{name: "empty", in: "", want: []string{}},
		{name: "whitespace only", in: " \t\n ", want: []string{}},
		{name: "punctuation only", in: "... !? -- «»", want: []string{}},
		{name: "keeps scandinavian letters", in: "käden, Åland ja öljy", want: []string{"käden", "Åland", "ja", "öljy"}},
		{name: "hyphen splits", in: "EU-maat", want: []string{"EU", "maat"}},
		{name: "apostrophe splits", in: "Tom's", want: []string{"Tom", "s"}},
		{name: "digits are words", in: "vuonna 2024 klo 12.30", want: []string{"vuonna", "2024", "klo", "12", "30"}},
		{name: "symbols are words", in: "5€ + 3$", want: []string{"5€", "+", "3$"}},
		{name: "no-break space and control chars", in: "talo\u00a0koti\u0007auto\u200bpyörä", want: []string{"talo", "koti", "auto", "pyörä"}},
		{name: "invalid utf-8 byte", in: "talo\xffkoti", want: []string{"talo", "koti"}},
		{name: "combining marks stay in token", in: "ka\u0308si", want: []string{"ka\u0308si"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeNeverReturnsEmptyTokens(t *testing.T) {
	for _, in := range []string{"a,,b", ",a, ,b,", "　a　", "(koira)"} {
		for _, tok := range Tokenize(in) {
			assert.NotEmpty(t, tok, "input %q", in)
		}
	}
}
