// Package voucher derives the display code printed on every accepted claim.
package voucher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MrJamesThe3rd/movilidad/internal/textnorm"
)

const (
	// Width is the zero padded width of the number part.
	Width = 5

	fallback = 'X'
)

// Serie builds the alphabetic prefix from the initial of the first token of
// each name. Accents are stripped, and a missing initial becomes 'X'.
func Serie(firstName, lastName string) string {
	return string([]rune{initial(firstName), initial(lastName)})
}

// Number zero pads n to Width digits. Longer numbers are kept whole.
func Number(n int64) string {
	return fmt.Sprintf("%0*d", Width, n)
}

// Code joins a serie and a sequence number, e.g. "AB00001".
func Code(serie string, n int64) string {
	return serie + Number(n)
}

func initial(name string) rune {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return fallback
	}

	for _, r := range textnorm.StripAccents(fields[0]) {
		if unicode.IsLetter(r) {
			return unicode.ToUpper(r)
		}

		break
	}

	return fallback
}
