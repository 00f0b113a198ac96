package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"NavSentinel/internal/config"
	"NavSentinel/internal/recorder"
)

// common holds the flags shared by every command.
type common struct {
	configPath string
	stake      string
	time       int
	change     int
}

func (c *common) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the YAML or JSON config file (defaults to $CONFIG_PATH, then config.json)")
	f.StringVar(&c.stake, "stake", "", "Stake size in fund units; ignores saved data from a previous run")
	f.IntVar(&c.time, "time", 0, "Refresh interval in seconds")
	f.IntVar(&c.change, "change", 0, "Checkpoint report interval in seconds")
}

// load reads the config file and applies flags and positional arguments.
func (c *common) load(args []string) (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.json"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(config.Overrides{Stake: c.stake, Time: c.time, Change: c.change, Args: args}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func useColor(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
}

// openRecorder falls back to a no-op recorder when SQLite is off or fails to open.
func openRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
