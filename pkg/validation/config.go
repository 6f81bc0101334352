// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"
)

// ValidateRange warns when a threshold range is inverted.
func ValidateRange(name string, min, max float64) string {
	if min > max {
		return fmt.Sprintf("Threshold '%s' has min above max (%g > %g) - every value will be clamped to %g", name, min, max, max)
	}
	return ""
}

// ValidateRegion warns when the default region has no rate table.
func ValidateRegion(defaultRegion string, regions []string) string {
	for _, region := range regions {
		if region == defaultRegion {
			return ""
		}
	}
	return fmt.Sprintf("Default region '%s' has no rate table (configured: %v) - requests without a region will fail", defaultRegion, regions)
}

// MissingThresholds warns about commodities in a rate table that have no
// moisture range, so their moisture input is never clamped.
func MissingThresholds(region string, commodities, withThresholds []string) []string {
	known := make(map[string]struct{}, len(withThresholds))
	for _, c := range withThresholds {
		known[c] = struct{}{}
	}

	var warnings []string
	for _, commodity := range commodities {
		if _, ok := known[commodity]; !ok {
			warnings = append(warnings, fmt.Sprintf("Commodity '%s' in region '%s' has no moisture threshold - moisture input will not be clamped", commodity, region))
		}
	}
	return warnings
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
