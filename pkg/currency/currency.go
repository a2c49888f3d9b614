// Package currency normalizes monetary amounts between the minor-unit
// convention used by stored prices (cents for most currencies) and the
// major-unit amounts shown to operators.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Minor-unit exponents that deviate from the default of 2.
var exponentOverrides = map[string]int32{
	"bif": 0, "clp": 0, "djf": 0, "gnf": 0, "jpy": 0, "kmf": 0, "krw": 0,
	"mga": 0, "pyg": 0, "rwf": 0, "ugx": 0, "vnd": 0, "vuv": 0, "xaf": 0,
	"xof": 0, "xpf": 0,
	"bhd": 3, "iqd": 3, "jod": 3, "kwd": 3, "lyd": 3, "omr": 3, "tnd": 3,
}

// Exponent returns the number of minor-unit digits for the currency code.
func Exponent(code string) int32 {
	if exp, ok := exponentOverrides[strings.ToLower(strings.TrimSpace(code))]; ok {
		return exp
	}
	return 2
}

// Normalize converts a stored minor-unit amount into major units.
func Normalize(code string, minorUnits int64) decimal.Decimal {
	return decimal.New(minorUnits, -Exponent(code))
}

// ToMinorUnits converts a major-unit amount into the stored minor-unit
// convention, rounding half away from zero.
func ToMinorUnits(code string, amount decimal.Decimal) int64 {
	return amount.Shift(Exponent(code)).Round(0).IntPart()
}

// RoundMinor rounds a fractional minor-unit amount to a whole number of
// minor units, half away from zero. Pro-rated refunds produce fractions.
func RoundMinor(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

// Format renders a minor-unit amount as "12.50 USD" style text.
func Format(code string, minorUnits int64) string {
	normalized := Normalize(code, minorUnits)
	return normalized.StringFixed(Exponent(code)) + " " + strings.ToUpper(strings.TrimSpace(code))
}
