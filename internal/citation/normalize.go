package citation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes characters and removes combining marks, so
// "Krishnamūrti" folds to "Krishnamurti".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Undiacritic folds diacritics and drops every character that is not an
// ASCII letter, digit, or whitespace; whitespace runs collapse to a single
// space. Author comparison happens in this normalized space.
func Undiacritic(s string) string {
	folded, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range folded {
		switch {
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}
