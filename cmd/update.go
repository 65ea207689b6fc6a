package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cscheub/passivincome"
	"github.com/google/subcommands"
)

type updateCmd struct {
	op    string
	asset string
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh market data for all assets from the configured provider"
}
func (*updateCmd) Usage() string {
	return `pic update [-op <operation>] [-a <asset>]

  Fetches market data for every asset definition (or a single one with -a)
  concurrently and applies the successful results to the asset database.
  The operation is one of price, price-history, dividend-history or intraday.
  A failing asset never aborts the batch: its failure is reported and the
  other assets are updated anyway.

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.op, "op", string(passivincome.RefreshPrice), "Refresh operation.")
	f.StringVar(&c.asset, "a", "", "Refresh only this asset definition.")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	op, err := passivincome.ParseOperation(c.op)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	defs := store.Definitions()
	if c.asset != "" {
		def, ok := store.Definition(c.asset)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown asset %q\n", c.asset)
			return subcommands.ExitFailure
		}
		defs = []passivincome.AssetDefinition{def}
	}
	if len(defs) == 0 {
		fmt.Println("No asset definitions to update.")
		return subcommands.ExitSuccess
	}

	provider, err := NewProvider()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	results, err := passivincome.RefreshBatch(ctx, provider, defs, op)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error refreshing market data:", err)
		return subcommands.ExitFailure
	}

	for _, r := range results {
		if r.Success {
			fmt.Printf("  updated %s\n", r.Symbol)
		} else {
			fmt.Printf("  failed  %s: %s\n", r.Symbol, r.Err)
		}
	}

	applied := store.Apply(results)
	if err := EncodeDefinitions(store.Definitions()); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing asset definitions:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %d/%d assets (%s)\n", applied, len(defs), op)
	return subcommands.ExitSuccess
}
