package passivincome

import (
	"strings"
	"testing"

	"github.com/cscheub/passivincome/date"
)

func fixtureTxs() []Transaction {
	return []Transaction{
		{ID: "t1", AssetID: "aapl", Type: Buy, Quantity: Q(10), Price: M(100, "USD"), Date: date.New(2024, 1, 2)},
		{ID: "t2", AssetID: "aapl", Type: Sell, Quantity: Q(4), Price: M(120, "USD"), Date: date.New(2024, 6, 2)},
		{ID: "t3", AssetID: "msft", Type: Dividend, Quantity: Q(6), Price: M(0.75, "USD"), Date: date.New(2024, 7, 2)},
	}
}

func fixtureDefs() []AssetDefinition {
	return []AssetDefinition{
		{ID: "aapl", Type: Stock, Ticker: "AAPL", ISIN: "US0378331005", Currency: "USD", CurrentPrice: 180},
		{ID: "msft", Type: Stock, Ticker: "MSFT", ISIN: "US5949181045", Currency: "USD", CurrentPrice: 410},
	}
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	txs, defs := fixtureTxs(), fixtureDefs()
	want := Fingerprint(txs, defs)

	shuffledTxs := []Transaction{txs[2], txs[0], txs[1]}
	shuffledDefs := []AssetDefinition{defs[1], defs[0]}
	if got := Fingerprint(shuffledTxs, shuffledDefs); got != want {
		t.Errorf("Fingerprint changed with input order: got %s, want %s", got, want)
	}
}

func TestFingerprintIgnoresNonValuationFields(t *testing.T) {
	txs, defs := fixtureTxs(), fixtureDefs()
	want := Fingerprint(txs, defs)

	// Live prices, names and payout dates do not participate.
	defs[0].CurrentPrice = 9999
	defs[0].Name = "Apple Inc."
	defs[0].PriceHistory.Append(date.New(2024, 8, 1), Price{Value: 200})
	txs[0].Price = M(1, "USD")
	txs[0].Date = date.New(2020, 1, 1)

	if got := Fingerprint(txs, defs); got != want {
		t.Errorf("Fingerprint changed on non-valuation fields: got %s, want %s", got, want)
	}
}

func TestFingerprintTracksValuationFields(t *testing.T) {
	base := Fingerprint(fixtureTxs(), fixtureDefs())

	testCases := []struct {
		name   string
		mutate func(txs []Transaction, defs []AssetDefinition)
	}{
		{"transaction quantity", func(txs []Transaction, defs []AssetDefinition) { txs[0].Quantity = Q(11) }},
		{"transaction type", func(txs []Transaction, defs []AssetDefinition) { txs[0].Type = Sell }},
		{"transaction asset reference", func(txs []Transaction, defs []AssetDefinition) { txs[0].AssetID = "msft" }},
		{"definition type", func(txs []Transaction, defs []AssetDefinition) { defs[0].Type = ETF }},
		{"definition isin", func(txs []Transaction, defs []AssetDefinition) { defs[0].ISIN = "US0000000000" }},
		{"definition wkn", func(txs []Transaction, defs []AssetDefinition) { defs[0].WKN = "865985" }},
		{"replaced transaction", func(txs []Transaction, defs []AssetDefinition) {
			txs[1] = Transaction{ID: "t9", AssetID: "aapl", Type: Buy, Quantity: Q(1), Price: M(1, "USD")}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txs, defs := fixtureTxs(), fixtureDefs()
			tc.mutate(txs, defs)
			if got := Fingerprint(txs, defs); got == base {
				t.Errorf("Fingerprint did not change when %s changed", tc.name)
			}
		})
	}
}

func TestFingerprintTellsSidesApart(t *testing.T) {
	txs, defs := fixtureTxs(), fixtureDefs()
	base := Fingerprint(txs, defs)
	parts := strings.Split(base, ":")
	if len(parts) != 2 {
		t.Fatalf("Fingerprint %q: want two sub-fingerprints joined by ':'", base)
	}

	txs[0].Quantity = Q(99)
	changed := strings.Split(Fingerprint(txs, defs), ":")
	if changed[0] == parts[0] {
		t.Errorf("transaction sub-fingerprint did not change")
	}
	if changed[1] != parts[1] {
		t.Errorf("definition sub-fingerprint changed on a transaction edit")
	}
}
