package passivincome

import "log"

// Allocation is one group of an allocation breakdown. Percentages across all
// groups of a breakdown sum to 100 whenever the total value is positive.
type Allocation struct {
	Group   string  `json:"type"`
	Value   float64 `json:"value"`
	Percent Percent `json:"percentage"`
	Count   int     `json:"count"`
}

// AssetAllocation groups positions by asset type and computes each group's
// share of the total portfolio value. Empty input yields an empty breakdown;
// the function is total and never panics.
func AssetAllocation(positions []Position) []Allocation {
	b := newBreakdown()
	for _, p := range positions {
		b.add(string(p.Type), p.Value.AsFloat())
	}
	return b.finish()
}

// IncomeAllocation groups monthly income by category, over the union of
// explicit income records and asset-derived income.
//
// An income record referencing an asset through SourceID claims that asset:
// assetFn is then never called for it, so the income is tracked exactly once.
// Records with a missing or malformed payment schedule are skipped and
// logged, never fatal.
//
// monthlyFn and assetFn default to MonthlyIncomeOf and the position's own
// monthly income; they are injectable for testing and for alternative income
// models.
func IncomeAllocation(incomes []IncomeRecord, positions []Position,
	monthlyFn func(IncomeRecord) (float64, error),
	assetFn func(Position) float64) []Allocation {

	if monthlyFn == nil {
		monthlyFn = MonthlyIncomeOf
	}
	if assetFn == nil {
		assetFn = func(p Position) float64 { return p.MonthlyIncome.AsFloat() }
	}

	claimed := make(map[string]struct{})
	for _, r := range incomes {
		if r.SourceID != "" {
			claimed[r.SourceID] = struct{}{}
		}
	}

	b := newBreakdown()
	for _, r := range incomes {
		monthly, err := monthlyFn(r)
		if err != nil {
			log.Printf("skipping income record %s: %v", r.ID, err)
			continue
		}
		b.add(r.Category, monthly)
	}
	for _, p := range positions {
		if _, ok := claimed[p.AssetID]; ok {
			// Already tracked by an explicit income record.
			continue
		}
		monthly := assetFn(p)
		if monthly == 0 {
			continue
		}
		b.add("dividend", monthly)
	}
	return b.finish()
}

// breakdown accumulates grouped values in first-seen order.
type breakdown struct {
	order  []string
	values map[string]float64
	counts map[string]int
}

func newBreakdown() *breakdown {
	return &breakdown{values: make(map[string]float64), counts: make(map[string]int)}
}

func (b *breakdown) add(group string, value float64) {
	if _, ok := b.values[group]; !ok {
		b.order = append(b.order, group)
	}
	b.values[group] += value
	b.counts[group]++
}

func (b *breakdown) finish() []Allocation {
	var total float64
	for _, v := range b.values {
		total += v
	}
	out := make([]Allocation, 0, len(b.order))
	for _, group := range b.order {
		a := Allocation{Group: group, Value: b.values[group], Count: b.counts[group]}
		if total > 0 {
			a.Percent = Percent(b.values[group] / total * 100)
		}
		out = append(out, a)
	}
	return out
}
