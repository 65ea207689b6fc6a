package passivincome

import (
	"math"
	"slices"

	"github.com/cscheub/passivincome/date"
)

// This file turns a raw dividend payout history into trailing windows, a
// compound annual growth rate, and forward projections.
//
// All functions here are total: insufficient data yields a zero value or an
// empty result, never a panic.

// FilterByYears retains the payout events within the trailing n years of today.
func FilterByYears(history []DividendEvent, years int) []DividendEvent {
	return filterByYears(history, years, date.Today())
}

func filterByYears(history []DividendEvent, years int, today date.Date) []DividendEvent {
	window := date.TrailingYears(today, years)
	out := make([]DividendEvent, 0, len(history))
	for _, e := range history {
		if window.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// CAGR returns the compound annual growth rate of the realized payouts in the
// history, computed between the earliest and the latest entry.
//
// It reports false when fewer than two realized entries exist, when the
// elapsed span is not positive, or when the first amount is not positive —
// a non-positive base would make the exponentiation meaningless.
func CAGR(history []DividendEvent) (float64, bool) {
	real := realized(history)
	if len(real) < 2 {
		return 0, false
	}
	first, last := real[0], real[len(real)-1]
	years := float64(last.Date.Sub(first.Date)) / 365.25
	if years <= 0 || first.Amount <= 0 {
		return 0, false
	}
	return math.Pow(last.Amount/first.Amount, 1/years) - 1, true
}

// Forecast projects future payouts from the realized history.
//
// The realized payouts of the most recent 12 months serve as the template, so
// the payout cadence is preserved: a quarterly payer stays quarterly. For each
// of the next 'years' years, every template entry is emitted one or more years
// later with its amount grown by (1+cagr)^yearOffset. When no growth rate can
// be computed the amounts are carried over flat.
//
// Every returned entry is tagged as a forecast; an empty or forecast-only
// history yields an empty result.
func Forecast(history []DividendEvent, years int) []DividendEvent {
	real := realized(history)
	if len(real) == 0 {
		return nil
	}

	growth, ok := CAGR(real)
	if !ok {
		growth = 0
	}

	anchor := real[len(real)-1].Date
	cutoff := anchor.AddYears(-1)
	var template []DividendEvent
	for _, e := range real {
		if e.Date.After(cutoff) {
			template = append(template, e)
		}
	}

	out := make([]DividendEvent, 0, years*len(template))
	for offset := 1; offset <= years; offset++ {
		factor := math.Pow(1+growth, float64(offset))
		for _, e := range template {
			out = append(out, DividendEvent{
				Date:     e.Date.AddYears(offset),
				Amount:   e.Amount * factor,
				Currency: e.Currency,
				Source:   "forecast",
				Forecast: true,
			})
		}
	}
	return out
}

// realized returns the non-forecast entries of the history, sorted
// chronologically. The input is never mutated.
func realized(history []DividendEvent) []DividendEvent {
	out := make([]DividendEvent, 0, len(history))
	for _, e := range history {
		if !e.Forecast {
			out = append(out, e)
		}
	}
	out = slices.Clip(out)
	sortDividends(out)
	return out
}
