// Package amount normalizes free-form currency input into 2-decimal values.
package amount

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const Places = 2

// Parse cleans a user supplied amount such as "S/ 45,00", "1.234,56" or
// "12.5" into a non-negative value rounded half away from zero to cents.
// Empty, unparseable and negative input yields zero. Text or blanks between
// two digit groups ("2 x 10", "4.5e1", "1 200") are unparseable.
func Parse(s string) decimal.Decimal {
	clean, ok := strip(trimCurrency(s))
	if !ok || clean == "" {
		return decimal.Zero
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}

	return Round(d)
}

var currencyPrefixes = []string{"S/.", "S/", "PEN", "US$", "$"}

func trimCurrency(s string) string {
	s = strings.TrimSpace(s)

	for _, p := range currencyPrefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return strings.TrimSpace(s[len(p):])
		}
	}

	return s
}

// strip drops blanks around separators and reports false on any other
// character, or on a blank that sits directly between two digits.
func strip(s string) (string, bool) {
	var (
		b       strings.Builder
		blank   bool
		prevDig bool
	)

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if blank && prevDig {
				return "", false
			}

			b.WriteRune(r)

			prevDig = true
			blank = false
		case r == ',' || r == '.' || r == '-':
			b.WriteRune(r)

			prevDig = false
			blank = false
		case unicode.IsSpace(r):
			blank = true
		default:
			return "", false
		}
	}

	return b.String(), true
}

// Round rounds to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders d with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// normalizeSeparators turns the decimal separator into '.' and drops the
// thousands separator. When both ',' and '.' appear, the last one wins as the
// decimal separator. A lone ',' is always a decimal separator.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}

		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}
