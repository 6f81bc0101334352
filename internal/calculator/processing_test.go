package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/grain-loss/pkg/testutil"
)

func TestComputeProcessingLoss(t *testing.T) {
	tests := []struct {
		name         string
		before       float64
		after        float64
		expectedLoss float64
		expectedRate float64
		negative     bool
	}{
		{"Normal loss", 1000, 985, 15, 1.5, false},
		{"No loss", 1000, 1000, 0, 0, false},
		{"After exceeds before", 500, 510, -10, -2, true},
		{"Fractional", 250.5, 249.25, 1.25, 0.499001996007984, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeProcessingLoss(ProcessingInput{BeforeQuantity: tt.before, AfterQuantity: tt.after})
			if err != nil {
				t.Fatalf("ComputeProcessingLoss() error = %v", err)
			}
			if result.LossQuantity != tt.expectedLoss {
				t.Errorf("LossQuantity = %v, expected %v", result.LossQuantity, tt.expectedLoss)
			}
			if !testutil.FloatEquals(result.LossRate, tt.expectedRate) {
				t.Errorf("LossRate = %v, expected %v", result.LossRate, tt.expectedRate)
			}
			if result.NegativeLoss != tt.negative {
				t.Errorf("NegativeLoss = %v, expected %v", result.NegativeLoss, tt.negative)
			}
		})
	}
}

func TestComputeProcessingLossInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   ProcessingInput
	}{
		{"Zero before", ProcessingInput{BeforeQuantity: 0, AfterQuantity: 0}},
		{"Negative before", ProcessingInput{BeforeQuantity: -5, AfterQuantity: 0}},
		{"NaN after", ProcessingInput{BeforeQuantity: 5, AfterQuantity: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeProcessingLoss(tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
