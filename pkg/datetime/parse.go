// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/grain-loss/pkg/constants"
)

const (
	// DateLayout is the calendar date format expected in forms and config files.
	DateLayout = constants.DateLayout

	hoursPerDay = 24
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a calendar date in DateLayout. Surrounding whitespace is
// ignored and an empty string is an error.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// CalendarDate drops the time of day and location of t, keeping only its
// year, month and day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayDiff returns the number of whole calendar days from start to end,
// measured midnight to midnight. It is negative when end is before start.
func DayDiff(start, end time.Time) int {
	return int(CalendarDate(end).Sub(CalendarDate(start)).Hours() / hoursPerDay)
}

// DateBeforeDate returns true if the calendar date of first is strictly
// before that of second.
func DateBeforeDate(first, second time.Time) bool {
	return CalendarDate(first).Before(CalendarDate(second))
}
