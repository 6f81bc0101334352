package ratetable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseYAML(t *testing.T) {
	doc := []byte(`玉米:
  - maxMonths: 6
    rate: 0.001
  - maxMonths: 12
    rate: 0.0015
  - maxMonths: null
    rate: 0.002
`)
	table, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tiers := table["玉米"]
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	if !tiers[2].IsUnbounded() {
		t.Error("expected null maxMonths to decode as unbounded")
	}
	if rate := LookupRate(table, "玉米", 13); rate != 0.002 {
		t.Errorf("LookupRate() = %v, expected 0.002", rate)
	}
}

func TestParseJSON(t *testing.T) {
	doc := []byte(`{"稻谷": [{"maxMonths": 5, "rate": 0.001}, {"maxMonths": 11, "rate": 0.0015}, {"maxMonths": null, "rate": 0.003}]}`)
	table, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rate := LookupRate(table, "稻谷", 11); rate != 0.0015 {
		t.Errorf("LookupRate() = %v, expected 0.0015", rate)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		errText string
	}{
		{"Empty document", "", "empty"},
		{"Malformed", "玉米: [", "failed to parse"},
		{"No tiers", "玉米: []", "no rate tiers"},
		{"Missing catch-all", "玉米: [{maxMonths: 6, rate: 0.001}]", "no unbounded"},
		{"Descending", "玉米: [{maxMonths: 12, rate: 0.001}, {maxMonths: 6, rate: 0.002}, {maxMonths: null, rate: 0.003}]", "does not ascend"},
		{"Unbounded first", "玉米: [{maxMonths: null, rate: 0.001}, {maxMonths: 6, rate: 0.002}]", "before the last"},
		{"Negative rate", "玉米: [{maxMonths: null, rate: -0.001}]", "negative rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("Parse() expected error containing %q", tt.errText)
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Parse() error = %v, expected to contain %q", err, tt.errText)
			}
		})
	}
}

func TestValidateDefault(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("default table should validate, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte("玉米: [{maxMonths: null, rate: 0.002}]\n"), 0600); err != nil {
		t.Fatalf("failed to write rate table: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if rate := LookupRate(table, "玉米", 0); rate != 0.002 {
		t.Errorf("LookupRate() = %v, expected 0.002", rate)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
