package form

import (
	"github.com/iwvelando/grain-loss/internal/calculator"
)

// LossForm is the raw storage loss report form.
type LossForm struct {
	Commodity   string `json:"commodity"`
	InDate      string `json:"inDate"`
	OutDate     string `json:"outDate"`
	InMoisture  string `json:"inMoisture"`
	OutMoisture string `json:"outMoisture"`
	InImpurity  string `json:"inImpurity"`
	OutImpurity string `json:"outImpurity"`
	InQuantity  string `json:"inQuantity"`
	OutQuantity string `json:"outQuantity"`
}

// Parse converts the form into a calculator input. Moisture and impurity are
// clamped into the configured ranges; every clamp is reported as a notice.
// Parsing stops at the first invalid field.
func (f LossForm) Parse(th Thresholds) (calculator.LossInput, []Notice, error) {
	var (
		in      = calculator.LossInput{Commodity: f.Commodity}
		notices []Notice
		err     error
	)

	if in.InDate, err = ParseDate("inDate", f.InDate); err != nil {
		return calculator.LossInput{}, nil, err
	}
	if in.OutDate, err = ParseDate("outDate", f.OutDate); err != nil {
		return calculator.LossInput{}, nil, err
	}

	moisture, hasMoisture := th.MoistureRange(f.Commodity)
	impurity, hasImpurity := th.ImpurityRange()

	percents := []struct {
		field  string
		raw    string
		dst    *float64
		label  string
		bounds Range
		clamp  bool
	}{
		{"inMoisture", f.InMoisture, &in.InMoisturePct, "水分", moisture, hasMoisture},
		{"outMoisture", f.OutMoisture, &in.OutMoisturePct, "水分", moisture, hasMoisture},
		{"inImpurity", f.InImpurity, &in.InImpurityPct, "杂质", impurity, hasImpurity},
		{"outImpurity", f.OutImpurity, &in.OutImpurityPct, "杂质", impurity, hasImpurity},
	}
	for _, p := range percents {
		v, err := ParsePercent(p.field, p.raw)
		if err != nil {
			return calculator.LossInput{}, nil, err
		}
		if p.clamp {
			if clamped := p.bounds.Clamp(v); clamped != v {
				notices = append(notices, clampNotice(p.field, f.Commodity, p.label, p.bounds))
				v = clamped
			}
		}
		*p.dst = v
	}

	if in.InQuantity, err = ParseQuantity("inQuantity", f.InQuantity); err != nil {
		return calculator.LossInput{}, nil, err
	}
	if in.OutQuantity, err = ParseQuantity("outQuantity", f.OutQuantity); err != nil {
		return calculator.LossInput{}, nil, err
	}

	return in, notices, nil
}

// SurplusForm is the raw outbound surplus/shortage report form.
type SurplusForm struct {
	InDate          string `json:"inDate"`
	OutDate         string `json:"outDate"`
	StorageQuantity string `json:"storageQuantity"`
	OutQuantity     string `json:"outQuantity"`
}

// Parse converts the form into a calculator input.
func (f SurplusForm) Parse() (calculator.SurplusInput, error) {
	var (
		in  calculator.SurplusInput
		err error
	)
	if in.StorageQuantity, err = ParseQuantity("storageQuantity", f.StorageQuantity); err != nil {
		return calculator.SurplusInput{}, err
	}
	if in.OutQuantity, err = ParseQuantity("outQuantity", f.OutQuantity); err != nil {
		return calculator.SurplusInput{}, err
	}
	if in.InDate, err = ParseDate("inDate", f.InDate); err != nil {
		return calculator.SurplusInput{}, err
	}
	if in.OutDate, err = ParseDate("outDate", f.OutDate); err != nil {
		return calculator.SurplusInput{}, err
	}
	return in, nil
}

// ProcessingForm is the raw purchase/processing loss report form. Moisture
// and impurity are recorded on the report but do not enter the calculation.
type ProcessingForm struct {
	BeforeDate     string `json:"beforeDate"`
	AfterDate      string `json:"afterDate"`
	BeforeQuantity string `json:"beforeQuantity"`
	AfterQuantity  string `json:"afterQuantity"`
	BeforeMoisture string `json:"beforeMoisture"`
	AfterMoisture  string `json:"afterMoisture"`
	BeforeImpurity string `json:"beforeImpurity"`
	AfterImpurity  string `json:"afterImpurity"`
}

// Parse converts the form into a calculator input. Dates and percent fields
// are optional here but must be well-formed when present, and percents must
// not be negative.
func (f ProcessingForm) Parse() (calculator.ProcessingInput, error) {
	for _, d := range []struct{ field, raw string }{{"beforeDate", f.BeforeDate}, {"afterDate", f.AfterDate}} {
		if isBlank(d.raw) {
			continue
		}
		if _, err := ParseDate(d.field, d.raw); err != nil {
			return calculator.ProcessingInput{}, err
		}
	}

	optional := []struct {
		field string
		raw   string
	}{
		{"beforeMoisture", f.BeforeMoisture},
		{"afterMoisture", f.AfterMoisture},
		{"beforeImpurity", f.BeforeImpurity},
		{"afterImpurity", f.AfterImpurity},
	}
	for _, o := range optional {
		if isBlank(o.raw) {
			continue
		}
		if _, err := ParseNonNegativePercent(o.field, o.raw); err != nil {
			return calculator.ProcessingInput{}, err
		}
	}

	var (
		in  calculator.ProcessingInput
		err error
	)
	if in.BeforeQuantity, err = ParseQuantity("beforeQuantity", f.BeforeQuantity); err != nil {
		return calculator.ProcessingInput{}, err
	}
	if in.AfterQuantity, err = ParseQuantity("afterQuantity", f.AfterQuantity); err != nil {
		return calculator.ProcessingInput{}, err
	}
	return in, nil
}
