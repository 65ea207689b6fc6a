package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
)

type clearCacheCmd struct{}

func (*clearCacheCmd) Name() string     { return "clear-cache" }
func (*clearCacheCmd) Synopsis() string { return "discard the persisted portfolio cache" }
func (*clearCacheCmd) Usage() string {
	return `pic clear-cache

  Discards the persisted portfolio cache. The next report recomputes the
  valuation from the records.

`
}
func (*clearCacheCmd) SetFlags(*flag.FlagSet) {}

func (c *clearCacheCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	err := os.Remove(*cacheFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error removing cache:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Portfolio cache cleared.")
	return subcommands.ExitSuccess
}
