package expression

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// displayPlaces bounds the digits shown after the decimal point so that
// accumulated floating point noise does not leak into rendered results.
const displayPlaces = 10

// FormatNumber renders a float64 without floating point noise.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "∞"
	case math.IsInf(value, -1):
		return "-∞"
	}

	return decimal.NewFromFloat(value).Round(displayPlaces).String()
}

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

// Superscript converts an integer exponent rendering to superscript runes.
func Superscript(text string) string {
	var builder strings.Builder
	for _, r := range text {
		if s, ok := superscriptDigits[r]; ok {
			builder.WriteRune(s)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// IsInteger reports whether value is integral within display precision.
func IsInteger(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value == math.Trunc(value)
}
