// Package textnorm cleans text pulled out of markup.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize collapses every run of whitespace into one space, trims the
// ends and removes NUL bytes, byte-order marks and other control runes. The
// result is in Unicode NFC, so a decomposed "й" matches a composed one.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\x00', r == '\uFEFF':
			return -1
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)

	return strings.Join(strings.Fields(norm.NFC.String(cleaned)), " ")
}

// Join normalizes each part and joins the non-empty results with a space.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
