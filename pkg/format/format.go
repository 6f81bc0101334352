// Package format renders computed report figures as display text.
package format

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/iwvelando/grain-loss/pkg/mathutil"
)

// Quantity returns a quantity fixed to two decimals (e.g., "17.14").
func Quantity(v float64) string {
	return fixed(v, constants.DecimalPlaces)
}

// Percent returns a rate fixed to two decimals with a trailing percent sign
// (e.g., "-4.00%").
func Percent(v float64) string {
	return Quantity(v) + "%"
}

// OneDecimal returns a moisture or impurity percentage as it is shown in an
// input field (e.g., "12.5").
func OneDecimal(v float64) string {
	return fixed(v, constants.PercentDecimalPlaces)
}

// Months returns a storage duration as integer text.
func Months(n int) string {
	return strconv.Itoa(n)
}

// YesNo returns the status label for a flag.
func YesNo(flag bool) string {
	if flag {
		return constants.YesLabel
	}
	return constants.NoLabel
}

func fixed(v float64, places int32) string {
	rounded := mathutil.RoundTo(v, places)
	if rounded == 0 {
		// Avoid "-0.00".
		rounded = 0
	}
	return fmt.Sprintf("%.*f", int(places), rounded)
}
