// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/grain-loss/internal/calculator"
	"github.com/iwvelando/grain-loss/internal/form"
	"github.com/iwvelando/grain-loss/internal/ratetable"
	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/iwvelando/grain-loss/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for grain-loss.
type Configuration struct {
	Logging       LoggingConfig              `yaml:"logging,omitempty"`
	Output        OutputConfig               `yaml:"output,omitempty"`
	Rounding      RoundingConfig             `yaml:"rounding,omitempty"`
	DefaultRegion string                     `yaml:"defaultRegion,omitempty"`
	RateTables    map[string]ratetable.Table `yaml:"rateTables,omitempty" mapstructure:"-"`
	Thresholds    *form.Thresholds           `yaml:"thresholds,omitempty" mapstructure:"-"`

	// RateTableFiles maps a region to a rate table document on disk.
	RateTableFiles map[string]string `yaml:"rateTableFiles,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// RoundingConfig selects the storage month rounding per report type.
type RoundingConfig struct {
	Loss    string `yaml:"loss,omitempty"`    // ceil (default), nearest, floor
	Surplus string `yaml:"surplus,omitempty"` // nearest (default), ceil, floor
}

// Default returns the configuration used when no file is supplied.
func Default() *Configuration {
	conf := &Configuration{}
	if err := conf.normalize(); err != nil {
		panic(err)
	}
	return conf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Relative rateTableFiles paths resolve against the
// config file's directory.
func LoadConfiguration(configPath string) (*Configuration, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return load(data, filepath.Dir(configPath))
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Relative rateTableFiles paths resolve against the working directory.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return load(data, "")
}

// keyedSections are the parts of the file keyed by commodity name. Viper
// lower-cases map keys, so they are decoded from the raw document instead.
type keyedSections struct {
	RateTables map[string]ratetable.Table `yaml:"rateTables"`
	Thresholds *form.Thresholds           `yaml:"thresholds"`
}

func load(data []byte, baseDir string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	var keyed keyedSections
	if err := yaml.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("unable to decode rate tables, %s", err)
	}
	configuration.RateTables = keyed.RateTables
	configuration.Thresholds = keyed.Thresholds

	if err := configuration.loadRateTableFiles(baseDir); err != nil {
		return nil, err
	}
	if err := configuration.normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// loadRateTableFiles reads every rateTableFiles entry into RateTables. A
// region may be defined inline or by file, not both.
func (c *Configuration) loadRateTableFiles(baseDir string) error {
	if len(c.RateTableFiles) == 0 {
		return nil
	}
	if c.RateTables == nil {
		c.RateTables = make(map[string]ratetable.Table, len(c.RateTableFiles))
	}
	inline := make(map[string]struct{}, len(c.RateTables))
	for region := range c.RateTables {
		inline[strings.ToLower(region)] = struct{}{}
	}

	for _, region := range validation.SortedKeys(c.RateTableFiles) {
		name := strings.ToLower(region)
		if _, ok := inline[name]; ok {
			return fmt.Errorf("rate table %q is defined both inline and in rateTableFiles", name)
		}
		path := c.RateTableFiles[region]
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		table, err := ratetable.LoadFile(path)
		if err != nil {
			return fmt.Errorf("rate table %q: %w", name, err)
		}
		c.RateTables[name] = table
	}
	return nil
}

// normalize fills in defaults and rejects settings the calculators cannot
// work with, including rate tables whose tiers are out of order or lack the
// catch-all. Region names are matched case-insensitively; commodity names
// are kept as written.
func (c *Configuration) normalize() error {
	if len(c.RateTables) == 0 {
		c.RateTables = map[string]ratetable.Table{constants.DefaultRegion: ratetable.Default()}
	} else {
		tables := make(map[string]ratetable.Table, len(c.RateTables))
		for region, table := range c.RateTables {
			tables[strings.ToLower(region)] = table
		}
		c.RateTables = tables
	}
	if c.DefaultRegion == "" {
		c.DefaultRegion = constants.DefaultRegion
	}
	c.DefaultRegion = strings.ToLower(c.DefaultRegion)

	if c.Thresholds == nil {
		defaults := form.DefaultThresholds()
		c.Thresholds = &defaults
	}

	var errs []error
	if _, err := calculator.ParseRoundingPolicy(c.Rounding.Loss, calculator.RoundCeiling); err != nil {
		errs = append(errs, fmt.Errorf("rounding.loss: %w", err))
	}
	if _, err := calculator.ParseRoundingPolicy(c.Rounding.Surplus, calculator.RoundNearest); err != nil {
		errs = append(errs, fmt.Errorf("rounding.surplus: %w", err))
	}
	for _, region := range c.Regions() {
		if err := ratetable.Validate(c.RateTables[region]); err != nil {
			errs = append(errs, fmt.Errorf("rate table %q: %w", region, err))
		}
	}
	return errors.Join(errs...)
}

// Regions returns the configured rate table names in a stable order.
func (c *Configuration) Regions() []string {
	return validation.SortedKeys(c.RateTables)
}

// RateTable returns the rate table for region, or the default region's table
// when region is empty.
func (c *Configuration) RateTable(region string) (ratetable.Table, error) {
	name := strings.ToLower(strings.TrimSpace(region))
	if name == "" {
		name = c.DefaultRegion
	}
	table, ok := c.RateTables[name]
	if !ok {
		return nil, fmt.Errorf("unknown rate table region %q", region)
	}
	return table, nil
}

// LossRounding returns the storage month rounding for loss reports.
func (c *Configuration) LossRounding() calculator.RoundingPolicy {
	policy, err := calculator.ParseRoundingPolicy(c.Rounding.Loss, calculator.RoundCeiling)
	if err != nil {
		return calculator.RoundCeiling
	}
	return policy
}

// SurplusRounding returns the storage month rounding for surplus reports.
func (c *Configuration) SurplusRounding() calculator.RoundingPolicy {
	policy, err := calculator.ParseRoundingPolicy(c.Rounding.Surplus, calculator.RoundNearest)
	if err != nil {
		return calculator.RoundNearest
	}
	return policy
}

// FormThresholds returns the input clamping ranges.
func (c *Configuration) FormThresholds() form.Thresholds {
	if c.Thresholds == nil {
		return form.DefaultThresholds()
	}
	return *c.Thresholds
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if warning := validation.ValidateRegion(c.DefaultRegion, c.Regions()); warning != "" {
		warnings = append(warnings, warning)
	}

	th := c.FormThresholds()
	if th.Impurity != nil {
		if warning := validation.ValidateRange("impurity", th.Impurity.Min, th.Impurity.Max); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	withMoisture := validation.SortedKeys(th.Moisture)
	for _, commodity := range withMoisture {
		r := th.Moisture[commodity]
		if warning := validation.ValidateRange(commodity+" moisture", r.Min, r.Max); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, region := range c.Regions() {
		commodities := c.RateTables[region].Commodities()
		warnings = append(warnings, validation.MissingThresholds(region, commodities, withMoisture)...)
	}

	return warnings
}
