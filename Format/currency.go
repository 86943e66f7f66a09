// Package Format renders amounts and parses quantity fields using the
// Austrian/German number convention (thousands dot, decimal comma).
package Format

import (
	"fmt"
	"strings"
)

// Euro formats an amount as "1.234,56 €". Two decimal places are always
// shown and a leading minus sign is kept for credit amounts.
func Euro(amount float64) string {
	return Number(amount) + " €"
}

// Number formats an amount with de-AT grouping but without the currency suffix.
func Number(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := groupThousands(parts[0])

	result := intPart + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}

// ParseQuantity extracts the leading decimal number from a free-text quantity
// such as "2,5 m²" or "3 Stk". A comma decimal separator is accepted alongside
// a dot. The second return value is false when the text carries no leading
// number at all (empty string, or text like "pauschal").
func ParseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	end := 0
	seenDigit := false
	seenSep := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			seenDigit = true
			end++
			continue
		}
		if (c == ',' || c == '.') && seenDigit && !seenSep {
			seenSep = true
			end++
			continue
		}
		break
	}
	if !seenDigit {
		return 0, false
	}

	numeric := strings.ReplaceAll(s[:end], ",", ".")
	numeric = strings.TrimSuffix(numeric, ".")

	var value float64
	if _, err := fmt.Sscanf(numeric, "%f", &value); err != nil {
		return 0, false
	}
	return value, true
}
