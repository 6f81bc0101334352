// Package ratetable holds the per-commodity tiered natural loss rates and the
// threshold lookup over them.
package ratetable

import (
	"sort"
)

// Tier is one step of a commodity's rate schedule. A nil MaxMonths is the
// unbounded catch-all tier.
type Tier struct {
	MaxMonths *int    `yaml:"maxMonths" json:"maxMonths" mapstructure:"maxMonths"`
	Rate      float64 `yaml:"rate" json:"rate" mapstructure:"rate"`
}

// Table maps a commodity name to its tiers, stored in ascending MaxMonths
// order with the unbounded tier last.
type Table map[string][]Tier

// UpTo returns a tier covering storage durations of at most months.
func UpTo(months int, rate float64) Tier {
	m := months
	return Tier{MaxMonths: &m, Rate: rate}
}

// Unbounded returns the catch-all tier.
func Unbounded(rate float64) Tier {
	return Tier{Rate: rate}
}

// IsUnbounded reports whether the tier covers every duration.
func (t Tier) IsUnbounded() bool {
	return t.MaxMonths == nil
}

// Covers reports whether a storage duration of months falls under the tier.
func (t Tier) Covers(months int) bool {
	return t.IsUnbounded() || months <= *t.MaxMonths
}

// Lookup returns the rate of the first tier covering months, scanning in
// stored order. found is false when the commodity is not in the table; the
// rate is then zero. A commodity whose tiers are exhausted without a match
// also yields zero but is still reported as found.
func Lookup(table Table, commodity string, months int) (rate float64, found bool) {
	tiers, ok := table[commodity]
	if !ok {
		return 0, false
	}
	for _, tier := range tiers {
		if tier.Covers(months) {
			return tier.Rate, true
		}
	}
	return 0, true
}

// LookupRate is Lookup without the presence flag.
func LookupRate(table Table, commodity string, months int) float64 {
	rate, _ := Lookup(table, commodity, months)
	return rate
}

// Commodities returns the commodity names in the table in a stable order.
func (t Table) Commodities() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the commodity has an entry in the table.
func (t Table) Has(commodity string) bool {
	_, ok := t[commodity]
	return ok
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for name, tiers := range t {
		copied := make([]Tier, len(tiers))
		for i, tier := range tiers {
			copied[i] = Tier{Rate: tier.Rate}
			if tier.MaxMonths != nil {
				m := *tier.MaxMonths
				copied[i].MaxMonths = &m
			}
		}
		out[name] = copied
	}
	return out
}

// Default returns the built-in rate table for maize and paddy rice.
func Default() Table {
	return Table{
		"玉米": {
			UpTo(6, 0.001),
			UpTo(12, 0.0015),
			Unbounded(0.002),
		},
		"稻谷": {
			UpTo(5, 0.001),
			UpTo(11, 0.0015),
			Unbounded(0.003),
		},
	}
}
