package calculator

import (
	"github.com/iwvelando/grain-loss/pkg/mathutil"
)

// ProcessingInput is a purchase/processing loss report's inputs: the
// quantity received and the quantity after levelling.
type ProcessingInput struct {
	BeforeQuantity float64 `json:"beforeQuantity"`
	AfterQuantity  float64 `json:"afterQuantity"`
}

// ProcessingResult holds the derived figures of a processing loss report.
type ProcessingResult struct {
	LossQuantity float64 `json:"lossQuantity"`
	LossRate     float64 `json:"lossRate"`
	// NegativeLoss flags an after quantity above the before quantity. The
	// result is still computed.
	NegativeLoss bool `json:"negativeLoss"`
}

// ComputeProcessingLoss validates in and computes the loss between the
// before and after quantities.
func ComputeProcessingLoss(in ProcessingInput) (ProcessingResult, error) {
	if err := checkNumber("beforeQuantity", in.BeforeQuantity); err != nil {
		return ProcessingResult{}, err
	}
	if err := checkNumber("afterQuantity", in.AfterQuantity); err != nil {
		return ProcessingResult{}, err
	}
	if in.BeforeQuantity <= 0 {
		return ProcessingResult{}, invalid("beforeQuantity", "must be greater than zero")
	}

	delta := mathutil.Difference(in.BeforeQuantity, in.AfterQuantity)
	return ProcessingResult{
		LossQuantity: delta,
		LossRate:     mathutil.CalculatePercentage(delta, in.BeforeQuantity),
		NegativeLoss: in.BeforeQuantity < in.AfterQuantity,
	}, nil
}
