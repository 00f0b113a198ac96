package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"NavSentinel/internal/fund"
	"NavSentinel/internal/notifier"
)

// lastCmd prints the saved record without touching the network.
type lastCmd struct {
	common
}

func (*lastCmd) Name() string     { return "last" }
func (*lastCmd) Synopsis() string { return "show the value saved by the previous run" }
func (*lastCmd) Usage() string {
	return `navsentinel last [-config <file>] [-stake n]
`
}

func (c *lastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.load(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rec := fund.LoadRecord(cfg.DataFile)
	if rec == nil {
		fmt.Fprintf(os.Stdout, "No saved data in %s.\n", cfg.DataFile)
		return subcommands.ExitFailure
	}
	notifier.NewConsole(os.Stdout, cfg.Name, useColor(cfg.Color, os.Stdout)).Saved(rec, cfg.Stake.Decimal)
	return subcommands.ExitSuccess
}
