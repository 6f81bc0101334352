package form

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/iwvelando/grain-loss/pkg/datetime"
	"github.com/iwvelando/grain-loss/pkg/mathutil"
)

// ParseQuantity parses a required decimal quantity.
func ParseQuantity(field, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &FieldError{Field: field, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: value, Reason: "is not a valid number"}
	}
	return v, nil
}

// ParsePercent parses a 0-100 percentage typed into a moisture or impurity
// field. Besides being numeric the text must not end in a dot, contain more
// than one dot, carry a minus sign anywhere but the front, or have more than
// one fractional digit.
func ParsePercent(field, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &FieldError{Field: field, Reason: "is required"}
	}
	if strings.HasSuffix(trimmed, ".") ||
		strings.Count(trimmed, ".") > 1 ||
		strings.LastIndex(trimmed, "-") > 0 {
		return 0, &FieldError{Field: field, Value: value, Reason: "is not a valid number"}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: value, Reason: "is not a valid number"}
	}
	if i := strings.Index(trimmed, "."); i >= 0 && len(trimmed)-i-1 > constants.PercentDecimalPlaces {
		return 0, &FieldError{Field: field, Value: value, Reason: "allows only one decimal place"}
	}
	return mathutil.RoundTo(v, constants.PercentDecimalPlaces), nil
}

// ParseNonNegativePercent is ParsePercent rejecting values below zero.
func ParseNonNegativePercent(field, value string) (float64, error) {
	v, err := ParsePercent(field, value)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &FieldError{Field: field, Value: value, Reason: "must not be negative"}
	}
	return v, nil
}

// ParseDate parses a required calendar date.
func ParseDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, &FieldError{Field: field, Reason: "is required"}
	}
	t, err := datetime.ParseDate(value)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Value: value, Reason: "is not a valid date"}
	}
	return t, nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
