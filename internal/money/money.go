// Package money formats computed amounts for display. Calculations keep
// full float64 precision; rounding happens only here.
package money

import (
	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// Round returns v rounded half away from zero to two decimal places.
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Format renders v with exactly two decimals.
func Format(v float64) string {
	return Round(v).StringFixed(2)
}

// Compact renders v for chart axes: 950, 12.5k, 3M.
func Compact(v float64) string {
	d := decimal.NewFromFloat(v)
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).Round(1).String() + "M"
	case abs.GreaterThanOrEqual(thousand):
		return d.Div(thousand).Round(1).String() + "k"
	default:
		return d.Round(0).String()
	}
}
