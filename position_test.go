package passivincome

import (
	"testing"

	"github.com/cscheub/passivincome/date"
)

func TestPositionsAggregatesLedger(t *testing.T) {
	defs := []AssetDefinition{{
		ID:           "acme",
		Type:         Stock,
		Name:         "ACME Corp",
		Currency:     "EUR",
		CurrentPrice: 500,
		DividendInfo: &DividendInfo{Frequency: date.Quarterly, Amount: 12.5},
	}}
	txs := []Transaction{
		{ID: "t1", AssetID: "acme", Type: Buy, Quantity: Q(14), Price: M(400, "EUR")},
		{ID: "t2", AssetID: "acme", Type: Sell, Quantity: Q(4), Price: M(450, "EUR")},
	}

	positions := Positions(txs, defs)
	if len(positions) != 1 {
		t.Fatalf("Positions returned %d positions, want 1", len(positions))
	}
	p := positions[0]

	if !p.Quantity.Equal(Q(10)) {
		t.Errorf("quantity = %s, want 10", p.Quantity)
	}
	if !p.Value.Equal(M(5000, "EUR")) {
		t.Errorf("value = %s, want 5000 EUR", p.Value)
	}
	// invested 14*400 - 4*450 = 3800, return = 5000 - 3800 = 1200
	if !p.Return.Equal(M(1200, "EUR")) {
		t.Errorf("return = %s, want 1200 EUR", p.Return)
	}
	if !p.ReturnPercent.Equal(Percent(1200.0 / 3800.0 * 100)) {
		t.Errorf("return percent = %s", p.ReturnPercent)
	}
	// 12.50 annualized per share, 10 shares: 125/year, 10.42/month.
	if got := p.MonthlyIncome.AsFloat(); !almost(got, 125.0/12) {
		t.Errorf("monthly income = %v, want %v", got, 125.0/12)
	}
}

func TestPositionsCountsDividendsInReturn(t *testing.T) {
	defs := []AssetDefinition{{ID: "acme", Type: Stock, Currency: "EUR", CurrentPrice: 100}}
	txs := []Transaction{
		{ID: "t1", AssetID: "acme", Type: Buy, Quantity: Q(10), Price: M(100, "EUR")},
		{ID: "t2", AssetID: "acme", Type: Dividend, Quantity: Q(10), Price: M(2, "EUR")},
	}

	positions := Positions(txs, defs)
	if len(positions) != 1 {
		t.Fatalf("Positions returned %d positions, want 1", len(positions))
	}
	if got := positions[0].Return; !got.Equal(M(20, "EUR")) {
		t.Errorf("return = %s, want 20 EUR from dividends", got)
	}
}

func TestPositionsSkipsBadRecords(t *testing.T) {
	defs := []AssetDefinition{
		{ID: "good", Type: Stock, Currency: "EUR", CurrentPrice: 10},
		{ID: "oversold", Type: Stock, Currency: "EUR", CurrentPrice: 10},
	}
	txs := []Transaction{
		{ID: "t1", AssetID: "good", Type: Buy, Quantity: Q(1), Price: M(10, "EUR")},
		{ID: "t2", AssetID: "ghost", Type: Buy, Quantity: Q(1), Price: M(10, "EUR")},
		{ID: "t3", AssetID: "oversold", Type: Sell, Quantity: Q(5), Price: M(10, "EUR")},
	}

	positions := Positions(txs, defs)
	if len(positions) != 1 || positions[0].AssetID != "good" {
		t.Fatalf("Positions = %+v, want only the 'good' position", positions)
	}
}

func TestComputeTotals(t *testing.T) {
	positions := []Position{
		{Value: M(100, "EUR"), MonthlyIncome: M(1, "EUR")},
		{Value: M(250, "EUR"), MonthlyIncome: M(2.5, "EUR")},
	}
	totals := ComputeTotals(positions)
	if !totals.Value.Equal(M(350, "EUR")) {
		t.Errorf("total value = %s, want 350 EUR", totals.Value)
	}
	if !totals.MonthlyIncome.Equal(M(3.5, "EUR")) {
		t.Errorf("total monthly income = %s, want 3.50 EUR", totals.MonthlyIncome)
	}
}

func TestComputeTotalsSkipsMismatchedCurrency(t *testing.T) {
	positions := []Position{
		{AssetID: "a", Value: M(100, "EUR"), MonthlyIncome: M(1, "EUR")},
		{AssetID: "b", Value: M(40, "USD"), MonthlyIncome: M(2, "USD")},
		{AssetID: "c", Value: M(50, "EUR"), MonthlyIncome: M(0.5, "EUR")},
	}
	totals := ComputeTotals(positions)
	if !totals.Value.Equal(M(150, "EUR")) {
		t.Errorf("total value = %s, want 150 EUR with the USD position skipped", totals.Value)
	}
	if !totals.MonthlyIncome.Equal(M(1.5, "EUR")) {
		t.Errorf("total monthly income = %s, want 1.50 EUR", totals.MonthlyIncome)
	}
}

func almost(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.005
}
