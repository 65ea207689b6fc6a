package passivincome

import (
	"testing"

	"github.com/cscheub/passivincome/date"
)

func TestAssetAllocation(t *testing.T) {
	positions := []Position{
		{AssetID: "a", Type: Stock, Value: M(600, "EUR")},
		{AssetID: "b", Type: Stock, Value: M(150, "EUR")},
		{AssetID: "c", Type: ETF, Value: M(250, "EUR")},
	}

	groups := AssetAllocation(positions)
	if len(groups) != 2 {
		t.Fatalf("AssetAllocation returned %d groups, want 2", len(groups))
	}
	if groups[0].Group != "stock" || groups[0].Count != 2 || !almost(groups[0].Value, 750) {
		t.Errorf("stock group = %+v", groups[0])
	}
	if !groups[0].Percent.Equal(75) || !groups[1].Percent.Equal(25) {
		t.Errorf("percents = %s, %s, want 75%% and 25%%", groups[0].Percent, groups[1].Percent)
	}
	assertSumsTo100(t, groups)
}

func TestAssetAllocationEmpty(t *testing.T) {
	if groups := AssetAllocation(nil); len(groups) != 0 {
		t.Errorf("AssetAllocation(nil) = %+v, want empty", groups)
	}
}

func TestAssetAllocationZeroTotal(t *testing.T) {
	positions := []Position{{AssetID: "a", Type: Stock, Value: M(0, "EUR")}}
	groups := AssetAllocation(positions)
	if len(groups) != 1 {
		t.Fatalf("AssetAllocation returned %d groups, want 1", len(groups))
	}
	if !groups[0].Percent.Equal(0) {
		t.Errorf("percent = %s, want 0%% when the total is zero", groups[0].Percent)
	}
}

func TestIncomeAllocation(t *testing.T) {
	incomes := []IncomeRecord{
		{ID: "salary", Category: "salary", Schedule: &PaymentSchedule{Frequency: date.Monthly, Amount: 3000}},
		{ID: "rent", Category: "rental", Schedule: &PaymentSchedule{Frequency: date.Monthly, Amount: 900}},
		{ID: "broken", Category: "rental"}, // no schedule, skipped
	}
	positions := []Position{
		{AssetID: "acme", MonthlyIncome: M(100, "EUR")},
		{AssetID: "idle", MonthlyIncome: M(0, "EUR")}, // no income, no group entry
	}

	groups := IncomeAllocation(incomes, positions, nil, nil)
	byGroup := make(map[string]Allocation)
	for _, g := range groups {
		byGroup[g.Group] = g
	}

	if g := byGroup["salary"]; !almost(g.Value, 3000) {
		t.Errorf("salary = %+v", g)
	}
	if g := byGroup["rental"]; !almost(g.Value, 900) || g.Count != 1 {
		t.Errorf("rental = %+v, want the broken record skipped", g)
	}
	if g := byGroup["dividend"]; !almost(g.Value, 100) || g.Count != 1 {
		t.Errorf("dividend = %+v", g)
	}
	assertSumsTo100(t, groups)
}

func TestIncomeAllocationNeverDoubleCounts(t *testing.T) {
	incomes := []IncomeRecord{
		{ID: "acme-divs", Category: "dividend", SourceID: "acme",
			Schedule: &PaymentSchedule{Frequency: date.Quarterly, Amount: 300}},
	}
	positions := []Position{{AssetID: "acme", MonthlyIncome: M(999, "EUR")}}

	assetFnCalls := 0
	groups := IncomeAllocation(incomes, positions, nil, func(p Position) float64 {
		assetFnCalls++
		return p.MonthlyIncome.AsFloat()
	})

	if assetFnCalls != 0 {
		t.Errorf("asset income resolved %d times for a claimed asset, want 0", assetFnCalls)
	}
	if len(groups) != 1 || !almost(groups[0].Value, 100) {
		t.Errorf("groups = %+v, want only the explicit record's 100", groups)
	}
}

func assertSumsTo100(t *testing.T, groups []Allocation) {
	t.Helper()
	var sum float64
	for _, g := range groups {
		sum += float64(g.Percent)
	}
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("percentages sum to %v, want 100 ± 0.1", sum)
	}
}
