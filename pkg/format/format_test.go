package format

import (
	"testing"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Whole", 50, "50.00"},
		{"Rounded down", 17.142857, "17.14"},
		{"Half rounds up", 0.005, "0.01"},
		{"Decimal half rounds up", 1.005, "1.01"},
		{"Negative", -20, "-20.00"},
		{"Tiny negative", -0.001, "0.00"},
		{"Large", 123456.789, "123456.79"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Quantity(tt.input); result != tt.expected {
				t.Errorf("Quantity(%v) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{5, "5.00%"},
		{-4, "-4.00%"},
		{0.499001996, "0.50%"},
	}

	for _, tt := range tests {
		if result := Percent(tt.input); result != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestOneDecimal(t *testing.T) {
	if result := OneDecimal(12); result != "12.0" {
		t.Errorf("OneDecimal(12) = %q, expected 12.0", result)
	}
	if result := OneDecimal(14.5); result != "14.5" {
		t.Errorf("OneDecimal(14.5) = %q, expected 14.5", result)
	}
}

func TestMonthsAndYesNo(t *testing.T) {
	if Months(13) != "13" {
		t.Errorf("Months(13) = %q", Months(13))
	}
	if YesNo(true) != "是" || YesNo(false) != "否" {
		t.Errorf("unexpected labels %q/%q", YesNo(true), YesNo(false))
	}
}
