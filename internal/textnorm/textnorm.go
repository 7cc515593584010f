// Package textnorm holds the text folding shared by voucher series and CSV
// header matching.
package textnorm

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents removes combining marks, so "Ñúñez" becomes "Nunez". Input
// the transformer rejects is returned unchanged.
func StripAccents(s string) string {
	// Chains keep state between calls, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}
