package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/date"
	"github.com/google/subcommands"
)

// recordCmd implements the buy, sell and dividend subcommands, which differ
// only in the transaction type they record.
type recordCmd struct {
	kind passivincome.TransactionType

	id       string
	asset    string
	quantity float64
	price    float64
	on       string
}

func newBuyCmd() *recordCmd      { return &recordCmd{kind: passivincome.Buy} }
func newSellCmd() *recordCmd     { return &recordCmd{kind: passivincome.Sell} }
func newDividendCmd() *recordCmd { return &recordCmd{kind: passivincome.Dividend} }

func (c *recordCmd) Name() string { return string(c.kind) }

func (c *recordCmd) Synopsis() string {
	switch c.kind {
	case passivincome.Buy:
		return "record a purchase of an asset"
	case passivincome.Sell:
		return "record a sale of an asset"
	default:
		return "record a dividend payout received for an asset"
	}
}

func (c *recordCmd) Usage() string {
	return fmt.Sprintf(`pic %s -a <asset> -q <quantity> -p <price> [-d <date>] [-id <id>]

  Records a %s transaction in the ledger. For dividends, -p is the per-share
  amount received. The date defaults to today, the id is generated when omitted.

`, c.kind, c.kind)
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id. Generated when empty.")
	f.StringVar(&c.asset, "a", "", "Asset definition id.")
	f.Float64Var(&c.quantity, "q", 0, "Quantity of shares or units.")
	f.Float64Var(&c.price, "p", 0, "Per-share price or payout amount.")
	f.StringVar(&c.on, "d", "", "Date of the transaction (defaults to today).")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -a <asset> is required.")
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	t := passivincome.Transaction{
		ID:       c.id,
		AssetID:  c.asset,
		Type:     c.kind,
		Quantity: passivincome.Q(c.quantity),
		Price:    passivincome.M(c.price, c.currency(store)),
	}
	if t.ID == "" {
		t.ID = fmt.Sprintf("%s-%s-%d", c.kind, c.asset, time.Now().UnixMilli())
	}
	if c.on != "" {
		on, err := date.Parse(c.on)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		t.Date = on
	}

	// Replay through the store so every ledger rule applies before the file
	// is touched: a sell beyond the held quantity never reaches the ledger.
	if err := store.Record(t); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	return AppendTransaction(t)
}

// currency returns the currency to price the transaction in: the asset's own
// when known, the app default otherwise.
func (c *recordCmd) currency(store *passivincome.Store) string {
	if def, ok := store.Definition(c.asset); ok && def.Currency != "" {
		return def.Currency
	}
	return *defaultCurrency
}
