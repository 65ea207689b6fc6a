package passivincome

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cscheub/passivincome/date"
)

// This file orchestrates batch market-data refreshes. Each asset is refreshed
// by its own execution unit (a goroutine working on a private clone of the
// definition) reporting back over a channel, so the failure of one asset can
// never abort the batch or taint another asset's result.

// Operation is the category of a market-data refresh. Categories are
// independent: an operation unsupported for one asset type fails that asset
// only.
type Operation string

const (
	RefreshPrice        Operation = "price"
	RefreshPriceHistory Operation = "price-history"
	RefreshDividends    Operation = "dividend-history"
	RefreshIntraday     Operation = "intraday"
)

// ParseOperation parses a refresh category from its textual form.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case RefreshPrice, RefreshPriceHistory, RefreshDividends, RefreshIntraday:
		return Operation(s), nil
	default:
		return "", fmt.Errorf("unknown refresh operation %q", s)
	}
}

// How far back dividend history is fetched, and how many trailing days an
// intraday refresh covers.
const (
	dividendLookbackYears = 10
	intradayTrailingDays  = 1
)

// BatchResult is the outcome of one asset's refresh. Success with an updated
// definition, or failure with an error message: never both.
type BatchResult struct {
	Success bool             `json:"success"`
	Symbol  string           `json:"symbol,omitempty"`
	Updated *AssetDefinition `json:"updatedDefinition,omitempty"`
	Err     string           `json:"error,omitempty"`
}

// refreshReply is the message an execution unit sends back to the orchestrator.
type refreshReply struct {
	index  int
	result BatchResult
}

// RefreshBatch fetches market data for all definitions concurrently and
// returns one result per definition, in input order, regardless of how many
// individual fetches failed.
//
// Per-asset failures (network errors, unknown tickers, malformed payloads,
// even a panicking provider) are captured in that asset's result. Only
// batch-level problems — no provider, unknown operation — fail the call
// itself, so a caller can tell a systemic failure from individual data
// problems.
//
// Cancelling the context abandons the remaining queue best-effort: results
// already completed are returned as-is, pending ones report the cancellation.
func RefreshBatch(ctx context.Context, p MarketProvider, defs []AssetDefinition, op Operation) ([]BatchResult, error) {
	if p == nil {
		return nil, errors.New("no market data provider configured")
	}
	if _, err := ParseOperation(string(op)); err != nil {
		return nil, err
	}

	replies := make(chan refreshReply, len(defs))
	for i, def := range defs {
		// Each unit works on its own clone; the caller's records stay intact
		// until results are explicitly applied.
		go refreshUnit(ctx, p, i, def.Clone(), op, replies)
	}

	results := make([]BatchResult, len(defs))
	for pending := len(defs); pending > 0; {
		select {
		case reply := <-replies:
			results[reply.index] = reply.result
			pending--
		case <-ctx.Done():
			for i := range results {
				if results[i] == (BatchResult{}) {
					results[i] = BatchResult{Symbol: defs[i].Ticker, Err: ctx.Err().Error()}
				}
			}
			return results, nil
		}
	}
	return results, nil
}

// RefreshSingle is RefreshBatch restricted to one definition. Same semantics
// at singular and batch granularity, no separate fast path to drift.
func RefreshSingle(ctx context.Context, p MarketProvider, def AssetDefinition, op Operation) (BatchResult, error) {
	results, err := RefreshBatch(ctx, p, []AssetDefinition{def}, op)
	if err != nil {
		return BatchResult{}, err
	}
	return results[0], nil
}

// refreshUnit is one execution unit. Only structured results cross its
// boundary: a panic inside the provider becomes a failed result.
func refreshUnit(ctx context.Context, p MarketProvider, index int, def AssetDefinition, op Operation, replies chan<- refreshReply) {
	result := func() (result BatchResult) {
		defer func() {
			if r := recover(); r != nil {
				result = failure(def.Ticker, fmt.Errorf("refresh panicked: %v", r))
			}
		}()
		return refreshOne(ctx, p, def, op)
	}()
	replies <- refreshReply{index: index, result: result}
}

// refreshOne performs one category of refresh on the unit's private clone.
func refreshOne(ctx context.Context, p MarketProvider, def AssetDefinition, op Operation) BatchResult {
	symbol := def.Ticker
	if symbol == "" {
		return failure("", fmt.Errorf("asset %s has no ticker", def.ID))
	}

	today := date.Today()
	switch op {
	case RefreshPrice:
		price, err := p.CurrentPrice(ctx, symbol)
		if err != nil {
			return failure(symbol, err)
		}
		if price <= 0 {
			return failure(symbol, fmt.Errorf("provider returned price %v", price))
		}
		def.CurrentPrice = price
		def.PriceHistory.Append(today, Price{Value: price, Source: p.Name()})

	case RefreshPriceHistory:
		// Fetch from the day after the last known price, up to today.
		from := today.AddYears(-1)
		if latest, _ := def.PriceHistory.Latest(); !latest.IsZero() && latest.After(from) {
			from = latest.Add(1)
		}
		if from.After(today) {
			// Already up to date, nothing to fetch.
			return BatchResult{Success: true, Symbol: symbol, Updated: &def}
		}
		history, err := p.PriceHistory(ctx, symbol, date.NewRange(from, today))
		if err != nil {
			return failure(symbol, err)
		}
		for day, price := range history.Values() {
			def.PriceHistory.Append(day, Price{Value: price, Source: p.Name()})
		}
		if _, latest := def.PriceHistory.Latest(); latest.Value > 0 {
			def.CurrentPrice = latest.Value
		}

	case RefreshDividends:
		events, err := p.DividendHistory(ctx, symbol, date.TrailingYears(today, dividendLookbackYears))
		if err != nil {
			return failure(symbol, err)
		}
		def.MergeDividends(events)
		// Cache the per-share monthly income from the trailing 12 months of
		// realized payouts, so aggregation stays O(1) per asset.
		if trailing := filterByYears(realized(def.DividendHistory), 1, today); len(trailing) > 0 {
			var sum float64
			for _, e := range trailing {
				sum += e.Amount
			}
			monthly := sum / 12
			def.MonthlyPerShare = &monthly
		}

	case RefreshIntraday:
		ticks, err := p.IntradayHistory(ctx, symbol, intradayTrailingDays)
		if err != nil {
			return failure(symbol, err)
		}
		if len(ticks) == 0 {
			return failure(symbol, fmt.Errorf("empty intraday response for %q", symbol))
		}
		last := ticks[len(ticks)-1]
		def.CurrentPrice = last.Price
		def.PriceHistory.Append(date.FromTime(last.Time), Price{Value: last.Price, Source: p.Name()})
	}

	return BatchResult{Success: true, Symbol: symbol, Updated: &def}
}

func failure(symbol string, err error) BatchResult {
	log.Printf("refresh failed for %q: %v", symbol, err)
	return BatchResult{Symbol: symbol, Err: err.Error()}
}
