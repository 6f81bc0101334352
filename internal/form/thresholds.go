package form

import (
	"fmt"
)

// Range is an inclusive bound on a percentage input.
type Range struct {
	Min float64 `yaml:"min" json:"min" mapstructure:"min"`
	Max float64 `yaml:"max" json:"max" mapstructure:"max"`
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Thresholds bounds moisture per commodity and impurity for all commodities.
type Thresholds struct {
	Moisture map[string]Range `yaml:"moisture" json:"moisture" mapstructure:"moisture"`
	Impurity *Range           `yaml:"impurity" json:"impurity" mapstructure:"impurity"`
}

// DefaultThresholds returns the standard acceptance ranges for maize and
// paddy rice.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Moisture: map[string]Range{
			"玉米": {Min: 9.0, Max: 14.5},
			"稻谷": {Min: 9.0, Max: 15.0},
		},
		Impurity: &Range{Min: 0.0, Max: 2.0},
	}
}

// MoistureRange returns the moisture bounds for a commodity, if any.
func (t Thresholds) MoistureRange(commodity string) (Range, bool) {
	r, ok := t.Moisture[commodity]
	return r, ok
}

// ImpurityRange returns the impurity bounds, if any.
func (t Thresholds) ImpurityRange() (Range, bool) {
	if t.Impurity == nil {
		return Range{}, false
	}
	return *t.Impurity, true
}

func clampNotice(field, commodity, label string, r Range) Notice {
	return Notice{
		Field:   field,
		Message: fmt.Sprintf("%s%s值已自动校正至有效范围 [%g-%g]", commodity, label, r.Min, r.Max),
	}
}
