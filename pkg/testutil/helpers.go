// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/grain-loss/pkg/datetime"
	"github.com/iwvelando/grain-loss/pkg/mathutil"
)

// FloatTolerance is the comparison tolerance used by FloatEquals.
const FloatTolerance = 1e-9

// Date parses a calendar date in datetime.DateLayout and panics on error.
func Date(value string) time.Time {
	return datetime.MustParseTime(datetime.DateLayout, value)
}

// FloatEquals reports whether two computed values agree within
// FloatTolerance.
func FloatEquals(a, b float64) bool {
	return mathutil.WithinTolerance(a, b, FloatTolerance)
}
