package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cscheub/passivincome/date"
)

func stamp(d date.Date) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC).Unix()
}

// chartServer answers every request with the given chart payload.
func chartServer(t *testing.T, payload string) *Provider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	t.Cleanup(srv.Close)
	return &Provider{Client: srv.Client(), Base: srv.URL + "/"}
}

func TestCurrentPrice(t *testing.T) {
	p := chartServer(t, `{"chart":{"result":[{"meta":{"regularMarketPrice":182.5,"currency":"USD"}}]}}`)
	price, err := p.CurrentPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if price != 182.5 {
		t.Errorf("CurrentPrice = %v, want 182.5", price)
	}
}

func TestCurrentPriceRefused(t *testing.T) {
	p := chartServer(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	if _, err := p.CurrentPrice(context.Background(), "NOPE"); err == nil {
		t.Error("CurrentPrice accepted an error response")
	}
}

func TestPriceHistorySkipsNulls(t *testing.T) {
	d1, d2, d3 := date.New(2026, 8, 3), date.New(2026, 8, 4), date.New(2026, 8, 5)
	payload := fmt.Sprintf(`{"chart":{"result":[{
		"timestamp":[%d,%d,%d],
		"indicators":{"quote":[{"close":[100.5,null,101.25]}]}}]}}`,
		stamp(d1), stamp(d2), stamp(d3))
	p := chartServer(t, payload)

	history, err := p.PriceHistory(context.Background(), "AAPL", date.NewRange(d1, d3))
	if err != nil {
		t.Fatal(err)
	}
	if history.Len() != 2 {
		t.Fatalf("history has %d points, want the null skipped", history.Len())
	}
	if v, ok := history.Get(d1); !ok || v != 100.5 {
		t.Errorf("history[%s] = %v %v, want 100.5", d1, v, ok)
	}
	if _, ok := history.Get(d2); ok {
		t.Errorf("history contains the padded null day %s", d2)
	}
}

func TestDividendHistory(t *testing.T) {
	in := date.New(2026, 3, 12)
	out := date.New(2020, 3, 12)
	payload := fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"USD"},
		"events":{"dividends":{
			"%d":{"amount":0.24,"date":%d},
			"%d":{"amount":0.20,"date":%d}}},
		"timestamp":[],
		"indicators":{"quote":[{"close":[]}]}}]}}`,
		stamp(in), stamp(in), stamp(out), stamp(out))
	p := chartServer(t, payload)

	events, err := p.DividendHistory(context.Background(), "AAPL",
		date.NewRange(date.New(2025, 1, 1), date.New(2026, 12, 31)))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want the out-of-range payout dropped", len(events))
	}
	e := events[0]
	if e.Date != in || e.Amount != 0.24 || e.Currency != "USD" || e.Source != "yahoo" || e.Forecast {
		t.Errorf("event = %+v", e)
	}
}

func TestDividendHistoryEmpty(t *testing.T) {
	p := chartServer(t, `{"chart":{"result":[{"meta":{"currency":"USD"}}]}}`)
	events, err := p.DividendHistory(context.Background(), "AAPL",
		date.NewRange(date.New(2025, 1, 1), date.New(2026, 12, 31)))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events from a response without events block, want 0", len(events))
	}
}

func TestIntradayHistory(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{"chart":{"result":[{
		"timestamp":[%d,%d],
		"indicators":{"quote":[{"close":[10.0,10.5]}]}}]}}`,
		now.Add(-5*time.Minute).Unix(), now.Unix())
	p := chartServer(t, payload)

	ticks, err := p.IntradayHistory(context.Background(), "AAPL", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ticks) != 2 {
		t.Fatalf("got %d ticks, want 2", len(ticks))
	}
	if ticks[1].Price != 10.5 || !ticks[1].Time.Equal(now) {
		t.Errorf("last tick = %+v", ticks[1])
	}
}
