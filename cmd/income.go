package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/date"
	"github.com/google/subcommands"
)

type addIncomeCmd struct {
	id        string
	name      string
	category  string
	amount    float64
	frequency string
	source    string
}

func (*addIncomeCmd) Name() string     { return "add-income" }
func (*addIncomeCmd) Synopsis() string { return "declare a recurring income source" }
func (*addIncomeCmd) Usage() string {
	return `pic add-income -id <id> -category <category> -amount <amount> [-frequency <frequency>] [-name <name>] [-source <asset>]

  Declares a recurring income source: a salary, a rental, an interest payment.
  The amount is per payment; frequency is monthly, quarterly or annually.
  When the income stems from a portfolio asset, -source references the asset
  so it is never counted twice in the income allocation.

`
}

func (c *addIncomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique income record id.")
	f.StringVar(&c.name, "name", "", "Human readable name.")
	f.StringVar(&c.category, "category", "", "Income category (salary, rental, interest...).")
	f.Float64Var(&c.amount, "amount", 0, "Amount per payment.")
	f.StringVar(&c.frequency, "frequency", "monthly", "Payment frequency.")
	f.StringVar(&c.source, "source", "", "Asset definition the income stems from, if any.")
}

func (c *addIncomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.category == "" {
		fmt.Fprintln(os.Stderr, "Error: -id and -category are required.")
		return subcommands.ExitUsageError
	}
	frequency, err := date.ParsePeriod(c.frequency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	r := passivincome.IncomeRecord{
		ID:       c.id,
		Name:     c.name,
		Category: c.category,
		Schedule: &passivincome.PaymentSchedule{Frequency: frequency, Amount: c.amount},
		SourceID: c.source,
	}
	if err := store.AddIncome(r); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	return AppendIncome(r)
}
