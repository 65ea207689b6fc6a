package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/renderer"
	"github.com/google/subcommands"
)

type allocationCmd struct {
	income bool
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "show the portfolio allocation breakdown" }
func (*allocationCmd) Usage() string {
	return `pic allocation [-income]

  Shows how the portfolio value is distributed across asset types, or with
  -income, how the monthly income is distributed across its sources.

`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.income, "income", false, "Break down monthly income instead of asset value.")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	v := OpenValuation()
	positions, _ := v.Snapshot(store.Transactions(), store.Definitions())

	var md string
	if c.income {
		groups := passivincome.IncomeAllocation(store.Incomes(), positions, nil, nil)
		md = renderer.RenderAllocation("Income Allocation", groups)
	} else {
		groups := passivincome.AssetAllocation(positions)
		md = renderer.RenderAllocation("Asset Allocation", groups)
	}
	printMarkdown(md)

	if err := CloseValuation(v); err != nil {
		fmt.Fprintln(os.Stderr, "Error persisting cache:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
