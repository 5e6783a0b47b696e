package utils

import (
	"strconv"
	"strings"
)

// NormalizeAmount converts a raw statement token like "UGX 1,234.56" into a
// non-negative numeric value. Every character that is not a decimal digit or
// a dot is stripped, so currency codes, thousands separators and sign
// characters all disappear ("-500" normalizes the same as "500"). Malformed
// input normalizes to 0.0 rather than failing.
//
// This is the single numeric parsing path for both summary matching and
// table heuristics.
func NormalizeAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	clean := b.String()
	if strings.Count(clean, ".") > 1 {
		return 0.0
	}
	clean = strings.TrimSuffix(clean, ".")
	if clean == "" {
		return 0.0
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// DigitCount returns the number of decimal digits in raw. Used to reject
// account- and phone-number-like tokens before they reach any accumulator.
func DigitCount(raw string) int {
	n := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
