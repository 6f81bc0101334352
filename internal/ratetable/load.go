package ratetable

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a rate table document of the shape
//
//	{commodity: [{maxMonths: 6, rate: 0.001}, {maxMonths: null, rate: 0.002}]}
//
// YAML and JSON are both accepted. The decoded table is validated.
func Parse(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse rate table: %w", err)
	}
	if table == nil {
		return nil, errors.New("rate table is empty")
	}
	if err := Validate(table); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadFile parses the rate table document at path.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the ordering contract Lookup depends on: every commodity
// has at least one tier, bounded tiers ascend strictly, exactly one unbounded
// tier closes the sequence, and no rate is negative. All violations are
// reported together.
func Validate(table Table) error {
	var errs []error
	for _, name := range table.Commodities() {
		tiers := table[name]
		if len(tiers) == 0 {
			errs = append(errs, fmt.Errorf("commodity %q has no rate tiers", name))
			continue
		}
		prev := -1
		for i, tier := range tiers {
			if tier.Rate < 0 {
				errs = append(errs, fmt.Errorf("commodity %q tier %d has negative rate %v", name, i, tier.Rate))
			}
			if tier.IsUnbounded() {
				if i != len(tiers)-1 {
					errs = append(errs, fmt.Errorf("commodity %q has an unbounded tier at position %d before the last tier", name, i))
				}
				continue
			}
			if *tier.MaxMonths < 0 {
				errs = append(errs, fmt.Errorf("commodity %q tier %d has negative maxMonths %d", name, i, *tier.MaxMonths))
			}
			if *tier.MaxMonths <= prev {
				errs = append(errs, fmt.Errorf("commodity %q tier %d maxMonths %d does not ascend (previous %d)", name, i, *tier.MaxMonths, prev))
			}
			prev = *tier.MaxMonths
		}
		if !tiers[len(tiers)-1].IsUnbounded() {
			errs = append(errs, fmt.Errorf("commodity %q has no unbounded catch-all tier", name))
		}
	}
	return errors.Join(errs...)
}
