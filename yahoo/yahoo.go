// Package yahoo fetches market data from the Yahoo Finance chart API.
//
// The wire format is resolved here, at the ingestion boundary: the rest of the
// engine only ever sees domain values.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/date"
	"github.com/cscheub/passivincome/web"
)

const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Provider implements [passivincome.MarketProvider] against Yahoo Finance. No API key
// required.
type Provider struct {
	Client *http.Client
	Base   string // endpoint override, defaults to the Yahoo chart API
}

// New returns a provider with a daily-expiring response cache.
func New() *Provider { return &Provider{Client: web.Daily()} }

func (p *Provider) Name() string { return "yahoo" }

func (p *Provider) base() string {
	if p.Base != "" {
		return p.Base
	}
	return chartURL
}

// chart fetches the chart endpoint for a symbol with the given query and
// returns the parsed JSON document.
func (p *Provider) chart(ctx context.Context, symbol string, query url.Values) (any, error) {
	addr := p.base() + url.PathEscape(symbol) + "?" + query.Encode()
	var jobj any
	if err := web.GetJSON(ctx, p.Client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	if desc, err := pick(jobj, "$.chart.error.description"); err == nil && desc != nil {
		return nil, fmt.Errorf("yahoo refused %q: %v", symbol, desc)
	}
	return jobj, nil
}

// CurrentPrice returns the regular market price from the chart metadata.
func (p *Provider) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	query := url.Values{"range": {"1d"}, "interval": {"1d"}}
	jobj, err := p.chart(ctx, symbol, query)
	if err != nil {
		return 0, err
	}
	return pickFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
}

// PriceHistory returns the daily closing prices within the range.
func (p *Provider) PriceHistory(ctx context.Context, symbol string, r date.Range) (date.History[float64], error) {
	var history date.History[float64]
	jobj, err := p.chart(ctx, symbol, rangeQuery(r, "1d"))
	if err != nil {
		return history, err
	}
	stamps, closes, err := series(jobj)
	if err != nil {
		return history, fmt.Errorf("error parsing %q: %w", symbol, err)
	}
	for i, ts := range stamps {
		// Yahoo pads missing days with nulls, skip them.
		if closes[i] == nil {
			continue
		}
		price, ok := closes[i].(float64)
		if !ok {
			continue
		}
		history.Append(date.FromTime(time.Unix(int64(ts), 0)), price)
	}
	return history, nil
}

// DividendHistory returns the realized payouts within the range.
func (p *Provider) DividendHistory(ctx context.Context, symbol string, r date.Range) ([]passivincome.DividendEvent, error) {
	query := rangeQuery(r, "1d")
	query.Set("events", "div")
	jobj, err := p.chart(ctx, symbol, query)
	if err != nil {
		return nil, err
	}
	currency, _ := pickString(jobj, "$.chart.result[0].meta.currency")

	jdivs, err := pick(jobj, "$.chart.result[0].events.dividends")
	if err != nil {
		// No events block means no dividends in the window.
		return nil, nil
	}
	divs, ok := jdivs.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: dividends is not an object", symbol)
	}

	var events []passivincome.DividendEvent
	for _, jdiv := range divs {
		entry, ok := jdiv.(map[string]any)
		if !ok {
			continue
		}
		amount, aok := entry["amount"].(float64)
		stamp, sok := entry["date"].(float64)
		if !aok || !sok || amount <= 0 {
			continue
		}
		on := date.FromTime(time.Unix(int64(stamp), 0))
		if !r.Contains(on) {
			continue
		}
		events = append(events, passivincome.DividendEvent{
			Date:     on,
			Amount:   amount,
			Currency: currency,
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
	query := url.Values{"range": {fmt.Sprintf("%dd", days)}, "interval": {"5m"}}
	jobj, err := p.chart(ctx, symbol, query)
	if err != nil {
		return nil, err
	}
	stamps, closes, err := series(jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", symbol, err)
	}
	var ticks []passivincome.Tick
	for i, ts := range stamps {
		price, ok := closes[i].(float64)
		if !ok {
			continue
		}
		ticks = append(ticks, passivincome.Tick{Time: time.Unix(int64(ts), 0).UTC(), Price: price})
	}
	return ticks, nil
}

func rangeQuery(r date.Range, interval string) url.Values {
	return url.Values{
		"period1":  {fmt.Sprintf("%d", dayStart(r.From).Unix())},
		"period2":  {fmt.Sprintf("%d", dayStart(r.To).Add(24*time.Hour).Unix())},
		"interval": {interval},
	}
}

func dayStart(d date.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// series extracts the parallel timestamp and close arrays of a chart response.
func series(jobj any) (stamps []float64, closes []any, err error) {
	jstamps, err := pick(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, nil, err
	}
	jcloses, err := pick(jobj, "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		return nil, nil, err
	}
	lstamps, ok := jstamps.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("timestamp is not a sequence")
	}
	lcloses, ok := jcloses.([]any)
	if !ok || len(lcloses) != len(lstamps) {
		return nil, nil, fmt.Errorf("close series does not match timestamps")
	}
	stamps = make([]float64, 0, len(lstamps))
	for _, js := range lstamps {
		s, ok := js.(float64)
		if !ok {
			return nil, nil, fmt.Errorf("timestamp is not a number")
		}
		stamps = append(stamps, s)
	}
	return stamps, lcloses, nil
}

func pick(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing: %q %w", path, err)
	}
	return jval, nil
}

func pickFloat(jobj any, path string) (float64, error) {
	jval, err := pick(jobj, path)
	if err != nil {
		return 0, err
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing: %q not a float: %v", path, jval)
	}
	return val, nil
}

func pickString(jobj any, path string) (string, error) {
	jval, err := pick(jobj, path)
	if err != nil {
		return "", err
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing: %q not a string: %v", path, jval)
	}
	return val, nil
}
