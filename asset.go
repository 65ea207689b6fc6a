package passivincome

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/cscheub/passivincome/date"
)

// AssetType classifies an asset definition. It is part of the asset's
// valuation identity: regrouping an asset changes allocations.
type AssetType string

const (
	Stock      AssetType = "stock"
	Bond       AssetType = "bond"
	RealEstate AssetType = "real_estate"
	Crypto     AssetType = "crypto"
	Cash       AssetType = "cash"
	ETF        AssetType = "etf"
	Other      AssetType = "other"
)

// ParseAssetType parses an asset type from its textual form.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case Stock, Bond, RealEstate, Crypto, Cash, ETF, Other:
		return AssetType(s), nil
	default:
		return "", fmt.Errorf("unknown asset type %q", s)
	}
}

// Price is a single point of an asset's price history, with the provider it
// came from.
type Price struct {
	Value  float64 `json:"price"`
	Source string  `json:"source,omitempty"`
}

// DividendEvent is a single dividend payout per share. Forecast entries are
// projections, never realized payouts; the flag keeps the two apart everywhere.
type DividendEvent struct {
	Date     date.Date `json:"date"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency,omitempty"`
	Source   string    `json:"source,omitempty"`
	Forecast bool      `json:"forecast,omitempty"`
}

// DividendInfo describes a periodic dividend in the absence of (or in addition
// to) a payout history.
//
// Amount is the annualized per-share amount, and Frequency only describes the
// payout cadence. When Months is given, Amount is instead the per-payout
// amount and the annualized figure is Amount × len(Months).
type DividendInfo struct {
	Frequency date.Period  `json:"frequency"`
	Amount    float64      `json:"amount"`
	Months    []time.Month `json:"months,omitempty"`
}

// AnnualPerShare returns the annualized per-share dividend amount.
func (i DividendInfo) AnnualPerShare() float64 {
	if len(i.Months) > 0 {
		return i.Amount * float64(len(i.Months))
	}
	return i.Amount
}

// Validate checks that the dividend description is usable.
func (i DividendInfo) Validate() error {
	if i.Amount < 0 {
		return fmt.Errorf("dividend amount %v is negative", i.Amount)
	}
	for _, m := range i.Months {
		if m < time.January || m > time.December {
			return fmt.Errorf("invalid payout month %d", m)
		}
	}
	return nil
}

// AssetDefinition describes one asset: its classification identity (id, type,
// isin, wkn), and its market data (current price, price history, dividend
// history). Market data fields are mutated only by the batch refresh
// orchestrator; classification fields only by explicit user edits. The
// aggregator never mutates a definition.
type AssetDefinition struct {
	ID           string
	Type         AssetType
	Ticker       string
	Name         string
	ISIN         string
	WKN          string
	Currency     string
	CurrentPrice float64
	PriceHistory date.History[Price]
	// DividendHistory holds realized payouts and, possibly, forecast entries
	// appended by the forecast module. Kept in chronological order.
	DividendHistory []DividendEvent
	DividendInfo    *DividendInfo
	// MonthlyPerShare caches the per-share monthly income derived from the
	// dividend history by the last refresh. Nil means no cache: fall back to
	// DividendInfo arithmetic.
	MonthlyPerShare *float64
	Sectors         []string
	Countries       []string
}

// Validate checks the definition's identity fields.
func (a *AssetDefinition) Validate() error {
	if a.ID == "" {
		return errors.New("asset definition id is missing")
	}
	if _, err := ParseAssetType(string(a.Type)); err != nil {
		return err
	}
	if a.DividendInfo != nil {
		if err := a.DividendInfo.Validate(); err != nil {
			return fmt.Errorf("asset %s: %w", a.ID, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the definition. A refresh worker mutates its
// own clone only, so a failed or concurrent refresh can never corrupt the
// original record.
func (a AssetDefinition) Clone() AssetDefinition {
	c := a
	c.PriceHistory = a.PriceHistory.Clone()
	c.DividendHistory = slices.Clone(a.DividendHistory)
	c.Sectors = slices.Clone(a.Sectors)
	c.Countries = slices.Clone(a.Countries)
	if a.DividendInfo != nil {
		info := *a.DividendInfo
		info.Months = slices.Clone(a.DividendInfo.Months)
		c.DividendInfo = &info
	}
	if a.MonthlyPerShare != nil {
		v := *a.MonthlyPerShare
		c.MonthlyPerShare = &v
	}
	return c
}

// MergeDividends folds realized payout events into the dividend history,
// replacing same-day entries and keeping the history sorted. Incoming forecast
// entries are dropped: only the forecast module may append projections.
func (a *AssetDefinition) MergeDividends(events []DividendEvent) {
	for _, e := range events {
		if e.Forecast {
			continue
		}
		replaced := false
		for i, have := range a.DividendHistory {
			if have.Date == e.Date && !have.Forecast {
				a.DividendHistory[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			a.DividendHistory = append(a.DividendHistory, e)
		}
	}
	sortDividends(a.DividendHistory)
}

// sortDividends sorts events chronologically, realized entries before
// forecasts on the same day.
func sortDividends(events []DividendEvent) {
	slices.SortStableFunc(events, func(a, b DividendEvent) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		case !a.Forecast && b.Forecast:
			return -1
		case a.Forecast && !b.Forecast:
			return 1
		default:
			return 0
		}
	})
}

// pricePoint is the persisted form of one price history entry.
type pricePoint struct {
	Date   date.Date `json:"date"`
	Price  float64   `json:"price"`
	Source string    `json:"source,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface with a stable field
// order, so the asset database stays diff-friendly.
func (a AssetDefinition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("type", a.Type)
	w.Optional("ticker", a.Ticker)
	w.Optional("name", a.Name)
	w.Optional("isin", a.ISIN)
	w.Optional("wkn", a.WKN)
	w.Optional("currency", a.Currency)
	w.Optional("currentPrice", a.CurrentPrice)
	if a.DividendInfo != nil {
		w.Append("dividendInfo", a.DividendInfo)
	}
	if a.MonthlyPerShare != nil {
		w.Append("monthlyPerShare", *a.MonthlyPerShare)
	}
	if len(a.Sectors) > 0 {
		w.Append("sectors", a.Sectors)
	}
	if len(a.Countries) > 0 {
		w.Append("countries", a.Countries)
	}
	if a.PriceHistory.Len() > 0 {
		points := make([]pricePoint, 0, a.PriceHistory.Len())
		for on, p := range a.PriceHistory.Values() {
			points = append(points, pricePoint{Date: on, Price: p.Value, Source: p.Source})
		}
		w.Append("priceHistory", points)
	}
	if len(a.DividendHistory) > 0 {
		w.Append("dividendHistory", a.DividendHistory)
	}
	return w.MarshalJSON()
}

func (a *AssetDefinition) UnmarshalJSON(b []byte) error {
	var j struct {
		ID              string          `json:"id"`
		Type            string          `json:"type"`
		Ticker          string          `json:"ticker"`
		Name            string          `json:"name"`
		ISIN            string          `json:"isin"`
		WKN             string          `json:"wkn"`
		Currency        string          `json:"currency"`
		CurrentPrice    float64         `json:"currentPrice"`
		DividendInfo    *DividendInfo   `json:"dividendInfo"`
		MonthlyPerShare *float64        `json:"monthlyPerShare"`
		Sectors         []string        `json:"sectors"`
		Countries       []string        `json:"countries"`
		PriceHistory    []pricePoint    `json:"priceHistory"`
		DividendHistory []DividendEvent `json:"dividendHistory"`
	}
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	typ, err := ParseAssetType(j.Type)
	if err != nil {
		return fmt.Errorf("asset %s: %w", j.ID, err)
	}
	*a = AssetDefinition{
		ID:              j.ID,
		Type:            typ,
		Ticker:          j.Ticker,
		Name:            j.Name,
		ISIN:            j.ISIN,
		WKN:             j.WKN,
		Currency:        j.Currency,
		CurrentPrice:    j.CurrentPrice,
		DividendInfo:    j.DividendInfo,
		MonthlyPerShare: j.MonthlyPerShare,
		Sectors:         j.Sectors,
		Countries:       j.Countries,
		DividendHistory: j.DividendHistory,
	}
	for _, p := range j.PriceHistory {
		a.PriceHistory.Append(p.Date, Price{Value: p.Price, Source: p.Source})
	}
	sortDividends(a.DividendHistory)
	return nil
}
