// Package numeric coerces raw survey text into numbers. Survey extracts are
// full of blanks, "NA"s and stray whitespace, so nothing in this package
// returns an error: a value that does not parse is simply absent.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Parse reports whether s holds a finite number, and returns it if so.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// Safe returns the first candidate that parses as a number, trying them left
// to right. If none parse, it returns 0.
func Safe(candidates ...string) float64 {
	return SafeOr(0, candidates...)
}

// SafeOr is like Safe but returns fallback when no candidate parses.
func SafeOr(fallback float64, candidates ...string) float64 {
	for _, c := range candidates {
		if v, ok := Parse(c); ok {
			return v
		}
	}

	return fallback
}

// AddUp sums the coerced value of each field.
func AddUp(fields ...string) float64 {
	var total float64
	for _, f := range fields {
		total += Safe(f)
	}

	return total
}

// Format renders a number the way the converter writes it to disk: integers
// without a decimal point, everything else at full precision.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
