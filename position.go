package passivincome

import (
	"log"
)

// Position aggregates all transactions referencing one asset definition.
// It is derived data: recomputed from the ledger, never persisted on its own
// outside the portfolio cache.
type Position struct {
	AssetID       string    `json:"assetId"`
	Ticker        string    `json:"ticker,omitempty"`
	Name          string    `json:"name,omitempty"`
	Type          AssetType `json:"type"`
	Quantity      Quantity  `json:"totalQuantity"`
	Value         Money     `json:"currentValue"`
	Return        Money     `json:"totalReturn"`
	ReturnPercent Percent   `json:"totalReturnPercentage"`
	MonthlyIncome Money     `json:"monthlyIncome"`
}

// Totals sums a set of positions.
type Totals struct {
	Value         Money `json:"totalValue"`
	MonthlyIncome Money `json:"monthlyIncome"`
}

// Positions aggregates the transaction log into one position per referenced
// asset definition, in definition order.
//
// Records with data-integrity problems (unknown asset reference, net negative
// quantity) are skipped and logged, never fatal: a single bad record must not
// take down the whole valuation.
func Positions(txs []Transaction, defs []AssetDefinition) []Position {
	type account struct {
		quantity  Quantity // net of buys and sells
		invested  Money    // cost of buys minus proceeds of sells
		dividends Money    // payouts received
	}

	index := make(map[string]*account, len(defs))
	for _, def := range defs {
		index[def.ID] = &account{}
	}

	for _, t := range txs {
		acc, ok := index[t.AssetID]
		if !ok {
			log.Printf("skipping transaction %s: unknown asset %q", t.ID, t.AssetID)
			continue
		}
		switch t.Type {
		case Buy:
			acc.quantity = acc.quantity.Add(t.Quantity)
			acc.invested = acc.invested.Add(t.Amount())
		case Sell:
			acc.quantity = acc.quantity.Sub(t.Quantity)
			acc.invested = acc.invested.Sub(t.Amount())
		case Dividend:
			acc.dividends = acc.dividends.Add(t.Amount())
		}
	}

	positions := make([]Position, 0, len(defs))
	for _, def := range defs {
		acc := index[def.ID]
		if acc.quantity.IsZero() && acc.invested.IsZero() && acc.dividends.IsZero() {
			// No transactions reference this definition.
			continue
		}
		if acc.quantity.IsNegative() {
			log.Printf("skipping position %s: net quantity %s is negative", def.ID, acc.quantity)
			continue
		}

		value := M(def.CurrentPrice, def.Currency).Mul(acc.quantity)
		ret := value.Add(acc.dividends).Sub(acc.invested)
		var pct Percent
		if acc.invested.IsPositive() {
			pct = Percent(ret.AsFloat() / acc.invested.AsFloat() * 100)
		}

		positions = append(positions, Position{
			AssetID:       def.ID,
			Ticker:        def.Ticker,
			Name:          def.Name,
			Type:          def.Type,
			Quantity:      acc.quantity,
			Value:         value,
			Return:        ret,
			ReturnPercent: pct,
			MonthlyIncome: M(AssetMonthlyIncome(def, acc.quantity), def.Currency),
		})
	}
	return positions
}

// ComputeTotals sums positions into portfolio totals.
//
// Totals are single-currency: the first position sets the currency, and a
// position valued in another currency is a data-integrity problem, skipped
// and logged like any other bad record.
func ComputeTotals(positions []Position) Totals {
	var t Totals
	for _, p := range positions {
		if c := t.Value.Currency(); c != "" && p.Value.Currency() != "" && p.Value.Currency() != c {
			log.Printf("skipping position %s in totals: currency %s does not match %s", p.AssetID, p.Value.Currency(), c)
			continue
		}
		t.Value = t.Value.Add(p.Value)
		t.MonthlyIncome = t.MonthlyIncome.Add(p.MonthlyIncome)
	}
	return t
}
