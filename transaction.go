package passivincome

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cscheub/passivincome/date"
)

// TransactionType is a typed string identifying the kind of a transaction.
type TransactionType string

// Transaction types recorded in the ledger.
const (
	Buy      TransactionType = "buy"
	Sell     TransactionType = "sell"
	Dividend TransactionType = "dividend"
)

// ParseTransactionType parses a transaction type from its textual form.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Buy, Sell, Dividend:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q, want buy, sell or dividend", s)
	}
}

// Transaction is a single buy/sell/dividend event against one asset.
// It is immutable once recorded, except for corrective edits.
type Transaction struct {
	ID       string          // unique identifier of the event
	AssetID  string          // non-owning back-reference to the AssetDefinition
	Type     TransactionType //
	Quantity Quantity        // number of shares or units involved
	Price    Money           // per-share price; for dividends, the per-share amount paid
	Date     date.Date       //
}

// Amount returns the total money moved by the transaction (quantity × price).
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// NetQuantity returns the signed effect of the transaction on the position:
// positive for a buy, negative for a sell, zero for a dividend.
func (t Transaction) NetQuantity() Quantity {
	switch t.Type {
	case Buy:
		return t.Quantity
	case Sell:
		return Q(0).Sub(t.Quantity)
	default:
		return Q(0)
	}
}

// Validate checks the transaction fields that do not depend on the rest of the
// ledger. Defaults the date to today when missing.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction id is missing")
	}
	if t.AssetID == "" {
		return errors.New("transaction asset reference is missing")
	}
	if _, err := ParseTransactionType(string(t.Type)); err != nil {
		return err
	}
	if t.Quantity.IsNegative() {
		return fmt.Errorf("transaction %s has a negative quantity %s", t.ID, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("transaction %s has a negative price %s", t.ID, t.Price)
	}
	if t.Date.IsZero() {
		t.Date = date.Today()
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface with a stable field order,
// so the ledger file stays diff-friendly.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("asset", t.AssetID)
	w.Append("type", t.Type)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
	var j struct {
		ID       string    `json:"id"`
		AssetID  string    `json:"asset"`
		Type     string    `json:"type"`
		Quantity Quantity  `json:"quantity"`
		Price    Money     `json:"price"`
		Date     date.Date `json:"date"`
	}
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	typ, err := ParseTransactionType(j.Type)
	if err != nil {
		return err
	}
	*t = Transaction{ID: j.ID, AssetID: j.AssetID, Type: typ, Quantity: j.Quantity, Price: j.Price, Date: j.Date}
	return nil
}
