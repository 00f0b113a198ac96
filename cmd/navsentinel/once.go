package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"NavSentinel/internal/collector"
	"NavSentinel/internal/fund"
	"NavSentinel/internal/logging"
	"NavSentinel/internal/model"
	"NavSentinel/internal/notifier"
	"NavSentinel/internal/scheduler"
)

// onceCmd performs a single poll and exits.
type onceCmd struct {
	common
}

func (*onceCmd) Name() string     { return "once" }
func (*onceCmd) Synopsis() string { return "fetch the fund status once, print it and save it" }
func (*onceCmd) Usage() string {
	return `navsentinel once [-config <file>] [-stake n] [stake]

  Fetches the status once, prints the current value and the change since
  the last saved data, then saves the new value.
`
}

func (c *onceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.load(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	var saved *model.Record
	if !cfg.StakeExplicit {
		saved = fund.LoadRecord(cfg.DataFile)
	}
	rec := openRecorder(cfg.SQLitePath)
	defer rec.Close()

	con := notifier.NewConsole(os.Stdout, cfg.Name, useColor(cfg.Color, os.Stdout))
	sched := scheduler.NewScheduler(
		collector.NewCollector(collector.NewHTTPFetcher(cfg.URL, cfg.NavPath, cfg.FundPath, cfg.Proxy)),
		fund.NewTracker(cfg.Stake.Decimal, saved, fund.CheckpointMode(cfg.CheckpointMode)),
		con,
		rec,
		cfg.DataFile,
		scheduler.Intervals{Refresh: cfg.Refresh(), Retry: cfg.Retry(), Checkpoint: cfg.Checkpoint()},
	)
	if err := sched.Poll(ctx); err != nil {
		con.Warn("Error retrieving %s data: %s.", cfg.Name, scheduler.FetchCode(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
