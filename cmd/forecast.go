package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cscheub/passivincome/renderer"
	"github.com/google/subcommands"
)

type forecastCmd struct {
	years int
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "project dividend payouts from their history" }
func (*forecastCmd) Usage() string {
	return `pic forecast [-y <years>]

  Projects future dividend payouts for every asset with a payout history.
  The most recent 12 months of real payouts serve as the template and each
  projected year grows by the history's compound annual growth rate.

`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "y", 3, "Number of years to project.")
}

func (c *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.years < 1 {
		fmt.Fprintln(os.Stderr, "Error: -y must be at least 1.")
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	forecast := &renderer.Forecast{Years: c.years}
	for _, def := range store.Definitions() {
		asset := renderer.NewForecastAsset(def, c.years)
		if len(asset.Events) == 0 {
			continue
		}
		forecast.Assets = append(forecast.Assets, asset)
	}
	if len(forecast.Assets) == 0 {
		fmt.Println("No dividend history to project from.")
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderForecast(forecast))
	return subcommands.ExitSuccess
}
