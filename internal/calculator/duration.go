package calculator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/iwvelando/grain-loss/pkg/datetime"
)

// RoundingPolicy selects how a day count is converted into whole storage
// months. Loss reports round up; surplus reports round to nearest.
type RoundingPolicy string

const (
	RoundCeiling RoundingPolicy = "ceil"
	RoundNearest RoundingPolicy = "nearest"
	RoundFloor   RoundingPolicy = "floor"
)

// ParseRoundingPolicy accepts the policy names used in configuration. An
// empty string yields fallback.
func ParseRoundingPolicy(value string, fallback RoundingPolicy) (RoundingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback, nil
	case "ceil", "ceiling", "up":
		return RoundCeiling, nil
	case "nearest", "round":
		return RoundNearest, nil
	case "floor", "down":
		return RoundFloor, nil
	default:
		return "", fmt.Errorf("unknown rounding policy %q", value)
	}
}

// Months converts days into months of constants.DaysPerMonth days.
func (p RoundingPolicy) Months(days int) int {
	months := float64(days) / constants.DaysPerMonth
	switch p {
	case RoundNearest:
		return int(math.Floor(months + 0.5))
	case RoundFloor:
		return int(math.Floor(months))
	default:
		return int(math.Ceil(months))
	}
}

// StorageMonths returns the storage duration between two calendar dates.
func StorageMonths(inDate, outDate time.Time, policy RoundingPolicy) int {
	return policy.Months(datetime.DayDiff(inDate, outDate))
}

func checkDates(inDate, outDate time.Time) error {
	if inDate.IsZero() {
		return invalid("inDate", "missing")
	}
	if outDate.IsZero() {
		return invalid("outDate", "missing")
	}
	if datetime.DateBeforeDate(outDate, inDate) {
		return invalid("outDate", "before inDate")
	}
	return nil
}
