package validation

import (
	"strings"
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name       string
		min        float64
		max        float64
		expectWarn bool
	}{
		{"Normal range", 9.0, 14.5, false},
		{"Single value", 2.0, 2.0, false},
		{"Inverted", 15.0, 9.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateRange("玉米 moisture", tt.min, tt.max)
			if (warning != "") != tt.expectWarn {
				t.Errorf("ValidateRange(%v, %v) = %q, expectWarn %v", tt.min, tt.max, warning, tt.expectWarn)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	if warning := ValidateRegion("default", []string{"default", "north"}); warning != "" {
		t.Errorf("unexpected warning %q", warning)
	}
	warning := ValidateRegion("south", []string{"default", "north"})
	if !strings.Contains(warning, "south") {
		t.Errorf("expected warning naming the region, got %q", warning)
	}
}

func TestMissingThresholds(t *testing.T) {
	warnings := MissingThresholds("default", []string{"玉米", "稻谷", "小麦"}, []string{"玉米", "稻谷"})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "小麦") {
		t.Errorf("expected warning about 小麦, got %q", warnings[0])
	}

	if warnings := MissingThresholds("default", nil, nil); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"north": 1, "default": 2, "east": 3})
	expected := []string{"default", "east", "north"}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Fatalf("SortedKeys() = %v, expected %v", keys, expected)
		}
	}
}
