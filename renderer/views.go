package renderer

import (
	"fmt"
	"strings"

	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/date"
)

// Holding is the holding report view: the aggregated positions and totals as
// of a date, with a flag telling whether they were served from the cache.
type Holding struct {
	Date      date.Date               `json:"date"`
	Positions []passivincome.Position `json:"positions"`
	Totals    passivincome.Totals     `json:"totals"`
	Cached    bool                    `json:"cached,omitempty"`
}

// RenderHolding renders the holding view to a markdown string.
func RenderHolding(h *Holding) string {
	partials := map[string]string{
		"holding_positions": "holding_positions.md",
	}
	return renderTemplate("holding", "holding.md", partials, h)
}

// AllocationView is a titled allocation breakdown.
type AllocationView struct {
	Title  string                    `json:"title"`
	Groups []passivincome.Allocation `json:"groups"`
}

// RenderAllocation renders an allocation breakdown to a markdown string.
func RenderAllocation(title string, groups []passivincome.Allocation) string {
	return renderTemplate("allocation", "allocation.md", nil, &AllocationView{Title: title, Groups: groups})
}

// ForecastAsset is the projected payout stream of one asset.
type ForecastAsset struct {
	Name   string                       `json:"name"`
	Growth string                       `json:"growth"`
	Events []passivincome.DividendEvent `json:"events"`
}

// Forecast is the dividend forecast view across all dividend-paying assets.
type Forecast struct {
	Years  int             `json:"years"`
	Assets []ForecastAsset `json:"assets"`
}

// NewForecastAsset projects the asset's dividend history 'years' ahead.
func NewForecastAsset(def passivincome.AssetDefinition, years int) ForecastAsset {
	name := def.Name
	if name == "" {
		name = def.ID
	}
	growth := "n/a"
	if cagr, ok := passivincome.CAGR(def.DividendHistory); ok {
		growth = fmt.Sprintf("%+.1f%%/year", cagr*100)
	}
	return ForecastAsset{
		Name:   name,
		Growth: growth,
		Events: passivincome.Forecast(def.DividendHistory, years),
	}
}

// RenderForecast renders the forecast view to a markdown string.
func RenderForecast(f *Forecast) string {
	partials := map[string]string{
		"forecast_asset": "forecast_asset.md",
	}
	return renderTemplate("forecast", "forecast.md", partials, f)
}

// PortfolioMarkdown renders the positions as a compact markdown digest. It is
// what the insight assistant reads: tickers and figures are key, prose is not.
func PortfolioMarkdown(positions []passivincome.Position, totals passivincome.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio\n\n")
	fmt.Fprintln(&b, "| Asset | Ticker | Type | Quantity | Value | Monthly Income |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, p := range positions {
		name := p.Name
		if name == "" {
			name = p.AssetID
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			name, p.Ticker, p.Type, p.Quantity, p.Value, p.MonthlyIncome)
	}
	fmt.Fprintf(&b, "\nTotal value: %s, monthly income: %s\n", totals.Value, totals.MonthlyIncome)
	return b.String()
}
