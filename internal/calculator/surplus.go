package calculator

import (
	"time"

	"github.com/iwvelando/grain-loss/pkg/mathutil"
)

// SurplusInput is an outbound surplus/shortage report's inputs.
type SurplusInput struct {
	InDate          time.Time `json:"inDate"`
	OutDate         time.Time `json:"outDate"`
	StorageQuantity float64   `json:"storageQuantity"`
	OutQuantity     float64   `json:"outQuantity"`
}

// SurplusResult holds the derived figures of a surplus/shortage report. A
// negative Quantity is a shortage.
type SurplusResult struct {
	StorageMonths int     `json:"storageMonths"`
	Quantity      float64 `json:"surplusQuantity"`
	Rate          float64 `json:"surplusRate"`
}

type surplusOptions struct {
	rounding RoundingPolicy
}

// SurplusOption customises ComputeSurplus.
type SurplusOption func(*surplusOptions)

// WithSurplusRounding overrides the storage month rounding policy. The
// default is RoundNearest.
func WithSurplusRounding(policy RoundingPolicy) SurplusOption {
	return func(o *surplusOptions) {
		if policy != "" {
			o.rounding = policy
		}
	}
}

// ComputeSurplus validates in and computes the storage-book versus outbound
// quantity difference.
func ComputeSurplus(in SurplusInput, opts ...SurplusOption) (SurplusResult, error) {
	o := surplusOptions{rounding: RoundNearest}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkNumber("storageQuantity", in.StorageQuantity); err != nil {
		return SurplusResult{}, err
	}
	if err := checkNumber("outQuantity", in.OutQuantity); err != nil {
		return SurplusResult{}, err
	}
	if err := checkDates(in.InDate, in.OutDate); err != nil {
		return SurplusResult{}, err
	}
	if in.StorageQuantity <= 0 {
		return SurplusResult{}, invalid("storageQuantity", "must be greater than zero")
	}

	delta := mathutil.Difference(in.StorageQuantity, in.OutQuantity)
	return SurplusResult{
		StorageMonths: StorageMonths(in.InDate, in.OutDate, o.rounding),
		Quantity:      delta,
		Rate:          mathutil.CalculatePercentage(delta, in.StorageQuantity),
	}, nil
}
