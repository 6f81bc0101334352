package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/grain-loss/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		logging  config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "Defaults", logging: config.LoggingConfig{}},
		{name: "Console debug", logging: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override wins", logging: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "Invalid level", logging: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "Invalid format", logging: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("initializeLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "grain-loss.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()
}

func TestLoadConfiguration(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	conf, err := loadConfiguration(missing, false)
	if err != nil {
		t.Fatalf("missing default config should fall back, got %v", err)
	}
	if _, err := conf.RateTable(""); err != nil {
		t.Errorf("fallback configuration has no default table: %v", err)
	}

	if _, err := loadConfiguration(missing, true); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf
	base := []string{"grain-loss", "--config", filepath.Join("..", "..", "config.yaml.example"), "--log-level", "error"}
	err := app.Run(append(base, args...))
	return buf.String(), err
}

func TestLossCommand(t *testing.T) {
	out, err := run(t, "--output-format", "csv", "loss",
		"--commodity", "玉米",
		"--in-date", "2025-01-01", "--out-date", "2025-02-15",
		"--in-moisture", "14", "--out-moisture", "12.5",
		"--in-impurity", "1", "--out-impurity", "0.8",
		"--in-quantity", "1000", "--out-quantity", "950",
	)
	if err != nil {
		t.Fatalf("loss command error = %v", err)
	}
	for _, want := range []string{"损耗合计,20.16,", "超耗数量,29.84,是", "是否超耗,是,是"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLossCommandInvalidInput(t *testing.T) {
	_, err := run(t, "loss", "--commodity", "玉米", "--in-date", "2025-01-01")
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	if !strings.Contains(err.Error(), "outDate") {
		t.Errorf("error = %v, expected it to name outDate", err)
	}
}

func TestSurplusAndProcessingCommands(t *testing.T) {
	out, err := run(t, "surplus", "--in-date", "2025-01-01", "--out-date", "2025-02-15",
		"--storage-quantity", "1000", "--out-quantity", "990")
	if err != nil {
		t.Fatalf("surplus command error = %v", err)
	}
	if !strings.Contains(out, "1.00%") {
		t.Errorf("surplus output missing rate:\n%s", out)
	}

	out, err = run(t, "processing", "--before-quantity", "1000", "--after-quantity", "1010")
	if err != nil {
		t.Fatalf("processing command error = %v", err)
	}
	if !strings.Contains(out, "-10.00 !") {
		t.Errorf("processing output missing negative loss warning:\n%s", out)
	}
}

func TestCommoditiesCommand(t *testing.T) {
	out, err := run(t, "commodities")
	if err != nil {
		t.Fatalf("commodities command error = %v", err)
	}
	for _, want := range []string{"玉米", "稻谷", "0.0015", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "commodities", "--region", "north"); err == nil {
		t.Error("expected unknown region error")
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	if _, err := run(t, "--output-format", "xml", "commodities"); err == nil {
		t.Error("expected output format error")
	}
}
