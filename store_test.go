package passivincome

import (
	"strings"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	for _, def := range fixtureDefs() {
		if err := s.AddDefinition(def); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestStoreRecordRules(t *testing.T) {
	s := testStore(t)

	buy := Transaction{ID: "t1", AssetID: "aapl", Type: Buy, Quantity: Q(10), Price: M(100, "USD")}
	if err := s.Record(buy); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name      string
		tx        Transaction
		expectErr bool
	}{
		{"valid sell", Transaction{ID: "t2", AssetID: "aapl", Type: Sell, Quantity: Q(4), Price: M(120, "USD")}, false},
		{"duplicate id", Transaction{ID: "t1", AssetID: "aapl", Type: Buy, Quantity: Q(1), Price: M(1, "USD")}, true},
		{"unknown asset", Transaction{ID: "t3", AssetID: "ghost", Type: Buy, Quantity: Q(1), Price: M(1, "USD")}, true},
		{"oversell", Transaction{ID: "t4", AssetID: "aapl", Type: Sell, Quantity: Q(7), Price: M(1, "USD")}, true},
		{"negative quantity", Transaction{ID: "t5", AssetID: "aapl", Type: Buy, Quantity: Q(-1), Price: M(1, "USD")}, true},
		{"sell all remaining", Transaction{ID: "t6", AssetID: "aapl", Type: Sell, Quantity: Q(6), Price: M(1, "USD")}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Record(tc.tx)
			if (err != nil) != tc.expectErr {
				t.Errorf("Record(%s) error = %v, want error: %v", tc.tx.ID, err, tc.expectErr)
			}
		})
	}
}

func TestStoreApplyReplacesWholeRecords(t *testing.T) {
	s := testStore(t)

	updated, _ := s.Definition("aapl")
	updated.CurrentPrice = 999
	ghost := AssetDefinition{ID: "ghost", Type: Stock}

	applied := s.Apply([]BatchResult{
		{Success: true, Symbol: "AAPL", Updated: &updated},
		{Success: false, Symbol: "MSFT", Err: "boom"},
		{Success: true, Symbol: "GHOST", Updated: &ghost},
	})
	if applied != 1 {
		t.Errorf("Apply applied %d results, want 1", applied)
	}

	got, _ := s.Definition("aapl")
	if got.CurrentPrice != 999 {
		t.Errorf("aapl price = %v, want the refreshed 999", got.CurrentPrice)
	}
	if msft, _ := s.Definition("msft"); msft.CurrentPrice != 410 {
		t.Errorf("msft price = %v, want untouched after a failed result", msft.CurrentPrice)
	}
	if _, ok := s.Definition("ghost"); ok {
		t.Error("Apply inserted a definition for an unknown asset")
	}
}

func TestStoreHandsOutCopies(t *testing.T) {
	s := testStore(t)
	defs := s.Definitions()
	defs[0].CurrentPrice = -1
	defs[0].PriceHistory.Append(fixtureTxs()[0].Date, Price{Value: 1})

	got, _ := s.Definition(defs[0].ID)
	if got.CurrentPrice == -1 || got.PriceHistory.Len() != 0 {
		t.Error("mutating a handed-out definition reached the store")
	}
}

func TestStoreIncomeRules(t *testing.T) {
	s := testStore(t)
	r := IncomeRecord{ID: "r1", Category: "dividend", SourceID: "aapl"}
	if err := s.AddIncome(r); err != nil {
		t.Fatal(err)
	}
	if err := s.AddIncome(r); err == nil {
		t.Error("duplicate income record accepted")
	}
	if err := s.AddIncome(IncomeRecord{ID: "r2", Category: "dividend", SourceID: "ghost"}); err == nil {
		t.Error("income record with unknown source accepted")
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	s := testStore(t)
	for _, tx := range fixtureTxs() {
		if err := s.Record(tx); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddIncome(IncomeRecord{ID: "r1", Category: "salary",
		Schedule: &PaymentSchedule{Amount: 100}}); err != nil {
		t.Fatal(err)
	}

	var defs, txs, incomes strings.Builder
	if err := EncodeDefinitions(&defs, s.Definitions()); err != nil {
		t.Fatal(err)
	}
	if err := EncodeTransactions(&txs, s.Transactions()); err != nil {
		t.Fatal(err)
	}
	if err := EncodeIncomes(&incomes, s.Incomes()); err != nil {
		t.Fatal(err)
	}

	gotDefs, err := DecodeDefinitions(strings.NewReader(defs.String()))
	if err != nil {
		t.Fatal(err)
	}
	gotTxs, err := DecodeTransactions(strings.NewReader(txs.String()))
	if err != nil {
		t.Fatal(err)
	}
	gotIncomes, err := DecodeIncomes(strings.NewReader(incomes.String()))
	if err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadStore(gotDefs, gotTxs, gotIncomes)
	if err != nil {
		t.Fatal(err)
	}

	// The reloaded store must valuate identically: same fingerprint, same totals.
	if Fingerprint(reloaded.Transactions(), reloaded.Definitions()) !=
		Fingerprint(s.Transactions(), s.Definitions()) {
		t.Error("reloaded records fingerprint differently")
	}
	want := ComputeTotals(Positions(s.Transactions(), s.Definitions()))
	got := ComputeTotals(Positions(reloaded.Transactions(), reloaded.Definitions()))
	if !got.Value.Equal(want.Value) {
		t.Errorf("reloaded total value = %s, want %s", got.Value, want.Value)
	}
}

func TestDecodeTransactionsReportsLine(t *testing.T) {
	in := `{"id":"t1","asset":"a","type":"buy","quantity":"1","price":{"currency":"EUR","amount":1},"date":"2026-01-02"}
{"id":"t2","asset":"a","type":"warp"}`
	_, err := DecodeTransactions(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want the offending line number", err)
	}
}
