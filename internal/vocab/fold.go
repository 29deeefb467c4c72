// Package vocab holds the hand-maintained lookup tables used to interpret
// free-text user input: genres, themes, platforms and languages, plus the
// accent-insensitive matching helpers they are queried with.
package vocab

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics, so "Películas" becomes "peliculas".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

var inflection = map[string]bool{"s": true, "es": true, "a": true, "as": true, "o": true, "os": true}

// Text is folded, tokenized input ready for keyword matching.
type Text struct {
	padded string
	tokens []string
}

// NewText folds s and splits it on anything that is not a letter or digit.
func NewText(s string) Text {
	tokens := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return Text{
		padded: " " + strings.Join(tokens, " ") + " ",
		tokens: tokens,
	}
}

// Tokens returns the folded words of the text.
func (t Text) Tokens() []string { return t.tokens }

// Normalized returns the folded words joined by single spaces.
func (t Text) Normalized() string { return strings.TrimSpace(t.padded) }

// Has reports whether keyword occurs in the text. Multi-word keywords must
// appear as a whole phrase; single words of five or more letters also match
// with a plural or gender suffix ("comedias", "divertidos").
func (t Text) Has(keyword string) bool {
	kw := NewText(keyword).Normalized()
	if kw == "" {
		return false
	}
	if strings.Contains(kw, " ") {
		return strings.Contains(t.padded, " "+kw+" ")
	}
	for _, tok := range t.tokens {
		if tok == kw {
			return true
		}
		if len(kw) >= 5 && strings.HasPrefix(tok, kw) && inflection[tok[len(kw):]] {
			return true
		}
	}
	return false
}

// HasAny reports whether any keyword occurs in the text.
func (t Text) HasAny(keywords []string) bool {
	for _, kw := range keywords {
		if t.Has(kw) {
			return true
		}
	}
	return false
}
