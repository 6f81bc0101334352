// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, half away from zero, using the
// shortest decimal representation of val. A quantity displayed as 0.005 is
// therefore rounded to 0.01 regardless of its binary approximation.
func Round(val float64) float64 {
	return RoundTo(val, constants.DecimalPlaces)
}

// RoundTo rounds val to the given number of decimal places.
func RoundTo(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// SumRounded rounds every value to two decimals first and then adds them.
// The sum is carried out in decimal so that 1.00 + 17.14 + 2.02 is exactly
// 20.16 rather than the nearest binary neighbour of the float sum.
func SumRounded(vals ...float64) float64 {
	sum := decimal.Zero
	for _, v := range vals {
		sum = sum.Add(decimal.NewFromFloat(v).Round(constants.DecimalPlaces))
	}
	return sum.InexactFloat64()
}

// Difference returns a - b computed in decimal, so that 1000 - 998.995 is
// 1.005 and not 1.0049999999999955.
func Difference(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// PercentToFraction converts a 0-100 percentage into a 0-1 fraction.
func PercentToFraction(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}
