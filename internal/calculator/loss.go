// Package calculator converts parsed report inputs into loss, surplus and
// processing-loss figures. Every function is pure; a result is recomputed
// from scratch on each call.
package calculator

import (
	"time"

	"github.com/iwvelando/grain-loss/internal/ratetable"
	"github.com/iwvelando/grain-loss/pkg/mathutil"
)

// LossInput is a storage loss report's inputs. Percentages are 0-100.
type LossInput struct {
	Commodity      string    `json:"commodity"`
	InDate         time.Time `json:"inDate"`
	OutDate        time.Time `json:"outDate"`
	InMoisturePct  float64   `json:"inMoisture"`
	OutMoisturePct float64   `json:"outMoisture"`
	InImpurityPct  float64   `json:"inImpurity"`
	OutImpurityPct float64   `json:"outImpurity"`
	InQuantity     float64   `json:"inQuantity"`
	OutQuantity    float64   `json:"outQuantity"`
}

// LossResult holds the derived figures of a storage loss report.
type LossResult struct {
	StorageMonths  int     `json:"storageMonths"`
	LossRate       float64 `json:"lossRate"`
	NaturalLoss    float64 `json:"naturalLoss"`
	MoistureLoss   float64 `json:"moistureLoss"`
	ImpurityLoss   float64 `json:"impurityLoss"`
	TotalLoss      float64 `json:"totalLoss"`
	ActualLoss     float64 `json:"actualLoss"`
	ActualLossRate float64 `json:"actualLossRate"`
	// OverLoss is signed; IsOverLoss is derived from it, not from the
	// clamped display value.
	OverLoss   float64 `json:"overLoss"`
	IsOverLoss bool    `json:"isOverLoss"`
	// UnknownCommodity is set when the commodity has no rate table entry
	// and the natural loss rate fell back to zero.
	UnknownCommodity bool `json:"unknownCommodity"`
}

// DisplayOverLoss is the over-loss clamped at zero and rounded to two
// decimals.
func (r LossResult) DisplayOverLoss() float64 {
	return mathutil.Round(mathutil.Max(0, r.OverLoss))
}

type lossOptions struct {
	rounding RoundingPolicy
}

// LossOption customises ComputeLoss.
type LossOption func(*lossOptions)

// WithLossRounding overrides the storage month rounding policy. The default
// is RoundCeiling.
func WithLossRounding(policy RoundingPolicy) LossOption {
	return func(o *lossOptions) {
		if policy != "" {
			o.rounding = policy
		}
	}
}

// ComputeLoss validates in and computes the storage loss report against the
// given rate table. Nothing is computed when validation fails.
func ComputeLoss(in LossInput, table ratetable.Table, opts ...LossOption) (LossResult, error) {
	o := lossOptions{rounding: RoundCeiling}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateLoss(in); err != nil {
		return LossResult{}, err
	}

	months := StorageMonths(in.InDate, in.OutDate, o.rounding)
	rate, found := ratetable.Lookup(table, in.Commodity, months)

	natural := in.InQuantity * rate
	moisture := moistureLoss(in)
	impurity := impurityLoss(in)
	total := mathutil.SumRounded(natural, moisture, impurity)

	actual := mathutil.Difference(in.InQuantity, in.OutQuantity)
	var actualRate float64
	if in.InQuantity > 0 {
		actualRate = mathutil.CalculatePercentage(actual, in.InQuantity)
	}
	over := mathutil.Difference(actual, total)

	return LossResult{
		StorageMonths:    months,
		LossRate:         rate,
		NaturalLoss:      natural,
		MoistureLoss:     moisture,
		ImpurityLoss:     impurity,
		TotalLoss:        total,
		ActualLoss:       actual,
		ActualLossRate:   actualRate,
		OverLoss:         over,
		IsOverLoss:       over > 0,
		UnknownCommodity: !found,
	}, nil
}

func validateLoss(in LossInput) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"inQuantity", in.InQuantity},
		{"outQuantity", in.OutQuantity},
		{"inMoisture", in.InMoisturePct},
		{"outMoisture", in.OutMoisturePct},
		{"inImpurity", in.InImpurityPct},
		{"outImpurity", in.OutImpurityPct},
	}
	for _, f := range fields {
		if err := checkNumber(f.name, f.value); err != nil {
			return err
		}
	}
	return checkDates(in.InDate, in.OutDate)
}

// moistureLoss restates the inbound weight on the outbound dry-matter basis.
// Only a moisture decrease counts.
func moistureLoss(in LossInput) float64 {
	if in.InMoisturePct < in.OutMoisturePct {
		return 0
	}
	inMoisture := mathutil.PercentToFraction(in.InMoisturePct)
	outMoisture := mathutil.PercentToFraction(in.OutMoisturePct)
	dryBasis := 1 - outMoisture
	if dryBasis <= 0 {
		return 0
	}
	return in.InQuantity * (inMoisture - outMoisture) / dryBasis
}

// impurityLoss restates the inbound weight on the outbound purity basis.
// Only an impurity decrease counts.
func impurityLoss(in LossInput) float64 {
	if in.InImpurityPct < in.OutImpurityPct {
		return 0
	}
	diff := mathutil.PercentToFraction(in.InImpurityPct) - mathutil.PercentToFraction(in.OutImpurityPct)
	purityBasis := 1 - mathutil.PercentToFraction(in.OutImpurityPct)
	if purityBasis <= 0 || diff < 0 {
		return 0
	}
	return in.InQuantity * diff / purityBasis
}
