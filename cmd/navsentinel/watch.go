package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"NavSentinel/internal/collector"
	"NavSentinel/internal/fund"
	"NavSentinel/internal/keyboard"
	"NavSentinel/internal/logging"
	"NavSentinel/internal/model"
	"NavSentinel/internal/notifier"
	"NavSentinel/internal/scheduler"
)

// watchCmd polls the status endpoint until interrupted.
type watchCmd struct {
	common
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "monitor the fund NAV and stake value (default command)" }
func (*watchCmd) Usage() string {
	return `navsentinel [watch] [-config <file>] [-stake n] [-time s] [-change s] [stake] [time] [change]

  Polls the fund status every <time> seconds and prints the change since
  start every <change> seconds. ESC, Ctrl-C or SIGINT prints a final
  report and exits.
`
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.load(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	restore, raw, err := keyboard.Watch(os.Stdin, cancel)
	defer restore()

	var out, errOut io.Writer = os.Stdout, os.Stderr
	if raw {
		out, errOut = keyboard.CRLF(os.Stdout), keyboard.CRLF(os.Stderr)
	}
	logging.Setup(errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Warn().Err(err).Msg("keypress exit unavailable")
	}

	var saved *model.Record
	if !cfg.StakeExplicit {
		saved = fund.LoadRecord(cfg.DataFile)
	}
	mode := fund.CheckpointMode(cfg.CheckpointMode)
	tracker := fund.NewTracker(cfg.Stake.Decimal, saved, mode)

	rec := openRecorder(cfg.SQLitePath)
	defer rec.Close()

	con := notifier.NewConsole(out, cfg.Name, useColor(cfg.Color, os.Stdout))
	fetcher := collector.NewHTTPFetcher(cfg.URL, cfg.NavPath, cfg.FundPath, cfg.Proxy)
	sched := scheduler.NewScheduler(
		collector.NewCollector(fetcher),
		tracker,
		con,
		rec,
		cfg.DataFile,
		scheduler.Intervals{Refresh: cfg.Refresh(), Retry: cfg.Retry(), Checkpoint: cfg.Checkpoint()},
	)

	since := model.BaselineStart
	if mode == fund.CheckpointRolling {
		since = model.BaselineCheckpoint
	}
	con.Banner(cfg.Stake.Decimal, cfg.Refresh(), cfg.Checkpoint(), since)
	log.Info().Str("url", cfg.URL).Str("data", cfg.DataFile).Bool("saved", saved != nil).Msg("monitoring started")

	if err := sched.Run(ctx); err != nil {
		log.Error().Err(err).Msg("scheduler stopped")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
