package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cscheub/passivincome/agent"
	"github.com/cscheub/passivincome/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `pic assist [question...]

  Starts an interactive session with the AI assistant, seeded with the
  current portfolio snapshot. Requires Gemini credentials in the environment.

`
}
func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading records:", err)
		return subcommands.ExitFailure
	}

	v := OpenValuation()
	positions, totals := v.Snapshot(store.Transactions(), store.Definitions())
	digest := renderer.PortfolioMarkdown(positions, totals)
	if err := CloseValuation(v); err != nil {
		fmt.Fprintln(os.Stderr, "Error persisting cache:", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin)
	if err := a.Start(ctx, client, digest); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed to start:", err)
		return subcommands.ExitFailure
	}
	if err := a.Run(ctx, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
