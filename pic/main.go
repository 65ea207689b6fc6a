// pic is the passive-income calculator command line tool.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/cscheub/passivincome/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion. It exits when invoked by the shell's
// completion machinery and is a no-op otherwise.
func completion() {
	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	pic := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"provider":     predict.Set{"yahoo", "finnhub"},
			"assets-file":  predict.Files("*.jsonl"),
			"ledger-file":  predict.Files("*.jsonl"),
			"incomes-file": predict.Files("*.jsonl"),
			"cache-file":   predict.Files("*.json"),
		},
	}
	pic.Complete("pic")
}
