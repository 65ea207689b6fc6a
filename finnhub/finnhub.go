// Package finnhub fetches market data from the Finnhub REST API.
//
// An API key is required; it is read from the -finnhub-key flag, defaulting to
// the FINNHUB_API_KEY environment variable.
package finnhub

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/date"
	"github.com/cscheub/passivincome/web"
)

const baseURL = "https://finnhub.io/api/v1"

var apiKey = flag.String("finnhub-key", os.Getenv("FINNHUB_API_KEY"), "Finnhub API key")

// Provider implements [passivincome.MarketProvider] against Finnhub.
type Provider struct {
	Client *http.Client
	Key    string
	Base   string // endpoint override, defaults to the Finnhub API
}

// New returns a provider authenticated by the given credentials, with a
// daily-expiring response cache. Credentials carrying no API key fall back to
// the -finnhub-key flag; without any key New fails.
func New(c passivincome.Credentials) (*Provider, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	key := c.APIKey
	if key == "" {
		key = *apiKey
	}
	if key == "" {
		return nil, errors.New("missing Finnhub API key, set -finnhub-key or FINNHUB_API_KEY")
	}
	return &Provider{Client: web.Daily(), Key: key}, nil
}

func (p *Provider) Name() string { return "finnhub" }

func (p *Provider) get(ctx context.Context, path string, query url.Values, data any) error {
	base := p.Base
	if base == "" {
		base = baseURL
	}
	query.Set("token", p.Key)
	return web.GetJSON(ctx, p.Client, base+path+"?"+query.Encode(), data)
}

// CurrentPrice returns the latest quote for the symbol.
func (p *Provider) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var quote struct {
		Current float64 `json:"c"`
	}
	if err := p.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	// Finnhub answers an all-zero quote for unknown symbols.
	if quote.Current == 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return quote.Current, nil
}

// candles fetches the candle endpoint at the given resolution.
func (p *Provider) candles(ctx context.Context, symbol, resolution string, from, to time.Time) (stamps []int64, closes []float64, err error) {
	var candle struct {
		Closes []float64 `json:"c"`
		Stamps []int64   `json:"t"`
		Status string    `json:"s"`
	}
	query := url.Values{
		"symbol":     {symbol},
		"resolution": {resolution},
		"from":       {fmt.Sprintf("%d", from.Unix())},
		"to":         {fmt.Sprintf("%d", to.Unix())},
	}
	if err := p.get(ctx, "/stock/candle", query, &candle); err != nil {
		return nil, nil, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	if candle.Status != "ok" {
		return nil, nil, fmt.Errorf("no candle data for %q: status %q", symbol, candle.Status)
	}
	if len(candle.Closes) != len(candle.Stamps) {
		return nil, nil, fmt.Errorf("close series for %q does not match timestamps", symbol)
	}
	return candle.Stamps, candle.Closes, nil
}

// PriceHistory returns the daily closing prices within the range.
func (p *Provider) PriceHistory(ctx context.Context, symbol string, r date.Range) (date.History[float64], error) {
	var history date.History[float64]
	stamps, closes, err := p.candles(ctx, symbol, "D", dayStart(r.From), dayStart(r.To).Add(24*time.Hour))
	if err != nil {
		return history, err
	}
	for i, ts := range stamps {
		history.Append(date.FromTime(time.Unix(ts, 0)), closes[i])
	}
	return history, nil
}

// DividendHistory returns the realized payouts within the range.
func (p *Provider) DividendHistory(ctx context.Context, symbol string, r date.Range) ([]passivincome.DividendEvent, error) {
	var payouts []struct {
		PayDate  string  `json:"payDate"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	query := url.Values{
		"symbol": {symbol},
		"from":   {r.From.String()},
		"to":     {r.To.String()},
	}
	if err := p.get(ctx, "/stock/dividend", query, &payouts); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	var events []passivincome.DividendEvent
	for _, payout := range payouts {
		on, err := date.Parse(payout.PayDate)
		if err != nil || payout.Amount <= 0 {
			continue
		}
		if !r.Contains(on) {
			continue
		}
		events = append(events, passivincome.DividendEvent{
			Date:     on,
			Amount:   payout.Amount,
			Currency: payout.Currency,
			Source:   p.Name(),
		})
	}
	return events, nil
}

// IntradayHistory returns 5-minute price observations for the trailing days.
func (p *Provider) IntradayHistory(ctx context.Context, symbol string, days int) ([]passivincome.Tick, error) {
	if days < 1 {
		days = 1
	}
	to := time.Now()
	stamps, closes, err := p.candles(ctx, symbol, "5", to.Add(-time.Duration(days)*24*time.Hour), to)
	if err != nil {
		return nil, err
	}
	ticks := make([]passivincome.Tick, 0, len(stamps))
	for i, ts := range stamps {
		ticks = append(ticks, passivincome.Tick{Time: time.Unix(ts, 0).UTC(), Price: closes[i]})
	}
	return ticks, nil
}

func dayStart(d date.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
