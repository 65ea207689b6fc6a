package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cscheub/passivincome/date"
	"github.com/cscheub/passivincome/renderer"
	"github.com/google/subcommands"
)

type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "show the aggregated portfolio positions and totals" }
func (*holdingCmd) Usage() string {
	return `pic holding

  Aggregates the ledger into positions and totals and renders the holding
  report. The valuation is served from the persisted cache when the records
  have not changed since the last computation and the cache is fresh.

`
}
func (*holdingCmd) SetFlags(*flag.FlagSet) {}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	v := OpenValuation()
	before := v.Cache()
	positions, totals := v.Snapshot(store.Transactions(), store.Definitions())

	report := &renderer.Holding{
		Date:      date.Today(),
		Positions: positions,
		Totals:    totals,
		Cached:    before != nil && before == v.Cache(),
	}
	printMarkdown(renderer.RenderHolding(report))

	if err := CloseValuation(v); err != nil {
		fmt.Fprintln(os.Stderr, "Error persisting cache:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
