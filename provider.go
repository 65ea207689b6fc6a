package passivincome

import (
	"context"
	"errors"
	"time"

	"github.com/cscheub/passivincome/date"
)

// Tick is one intraday price observation.
type Tick struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// MarketProvider abstracts an external market-data service. Implementations
// resolve the provider's wire format once at the ingestion boundary and hand
// back domain values only.
//
// Every method honours the context and returns an error instead of panicking;
// the batch refresh orchestrator converts those errors into per-asset results.
type MarketProvider interface {
	// Name identifies the provider, recorded as the source of fetched data.
	Name() string
	// CurrentPrice returns the latest known price for the symbol.
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	// PriceHistory returns daily closing prices within the range.
	PriceHistory(ctx context.Context, symbol string, r date.Range) (date.History[float64], error)
	// DividendHistory returns realized per-share payouts within the range.
	DividendHistory(ctx context.Context, symbol string, r date.Range) ([]DividendEvent, error)
	// IntradayHistory returns intraday price observations for the trailing days.
	IntradayHistory(ctx context.Context, symbol string, days int) ([]Tick, error)
}

// Credentials select a market-data provider and authenticate against it.
type Credentials struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey,omitempty"`
}

// Validate checks that the credentials name a provider. Whether an API key is
// required is the provider's own business.
func (c Credentials) Validate() error {
	if c.Provider == "" {
		return errors.New("no market data provider selected")
	}
	return nil
}
