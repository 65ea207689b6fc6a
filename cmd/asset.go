package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cscheub/passivincome"
	"github.com/google/subcommands"
)

type addAssetCmd struct {
	id       string
	typ      string
	ticker   string
	name     string
	isin     string
	wkn      string
	currency string
	price    float64
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "declare a new asset definition" }
func (*addAssetCmd) Usage() string {
	return `pic add-asset -id <id> -type <type> [-ticker <ticker>] [-name <name>] [-isin <isin>] [-wkn <wkn>] [-c <currency>] [-p <price>]

  Declares a new asset in the definitions database. The type is one of stock,
  bond, real_estate, crypto, cash, etf or other.

`
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique asset id.")
	f.StringVar(&c.typ, "type", "stock", "Asset type.")
	f.StringVar(&c.ticker, "ticker", "", "Provider ticker symbol.")
	f.StringVar(&c.name, "name", "", "Human readable name.")
	f.StringVar(&c.isin, "isin", "", "ISIN identifier.")
	f.StringVar(&c.wkn, "wkn", "", "WKN identifier.")
	f.StringVar(&c.currency, "c", "", "Currency of the asset. Defaults to the app currency.")
	f.Float64Var(&c.price, "p", 0, "Initial price per share.")
}

func (c *addAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	typ, err := passivincome.ParseAssetType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}
	def := passivincome.AssetDefinition{
		ID:           c.id,
		Type:         typ,
		Ticker:       c.ticker,
		Name:         c.name,
		ISIN:         c.isin,
		WKN:          c.wkn,
		Currency:     currency,
		CurrentPrice: c.price,
	}
	if err := store.AddDefinition(def); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := EncodeDefinitions(store.Definitions()); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing asset definitions:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Declared asset %s in %s\n", c.id, *assetsFile)
	return subcommands.ExitSuccess
}
