package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InterestSlab is a rate bracket; Limit is the inclusive upper bound of the bracket.
type InterestSlab struct {
	Limit decimal.Decimal `json:"limit"`
	Rate  decimal.Decimal `json:"rate"`
}

// SlabTable is an unordered set of slabs.
type SlabTable []InterestSlab

// Sorted returns a copy of the table ordered by ascending limit.
func (t SlabTable) Sorted() SlabTable {
	sorted := make(SlabTable, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Limit.LessThan(sorted[j].Limit)
	})
	return sorted
}

// RateFor returns the rate of the first slab, by ascending limit, whose limit is at
// least amount. Amounts above every limit take the highest slab's rate. An empty
// table yields zero.
func (t SlabTable) RateFor(amount decimal.Decimal) decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	sorted := t.Sorted()
	for _, s := range sorted {
		if s.Limit.GreaterThanOrEqual(amount) {
			return s.Rate
		}
	}
	return sorted[len(sorted)-1].Rate
}
