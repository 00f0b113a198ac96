package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is a decimal that decodes from a YAML number or string.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: stake must be a number", value.Line)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	a.Decimal = d
	return nil
}

// Config holds all application configuration. Intervals are in seconds.
type Config struct {
	Stake          Amount `yaml:"stake"`
	UpdateInterval int    `yaml:"updateInterval"`
	ChangeInterval int    `yaml:"changeInterval"`
	RetryDelay     int    `yaml:"retryDelay"`
	CheckpointMode string `yaml:"checkpointMode"`

	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	NavPath  string `yaml:"navPath"`
	FundPath string `yaml:"fundPath"`
	Proxy    string `yaml:"proxy"`

	DataFile   string `yaml:"dataFile"`
	SQLitePath string `yaml:"sqlitePath"`

	Color     string `yaml:"color"`
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	// StakeExplicit is set when the stake came from the command line.
	// The saved record is then ignored.
	StakeExplicit bool `yaml:"-"`
}

// Overrides carries command-line values. Zero values are ignored.
// Args are the positional arguments: stake, refresh seconds, checkpoint seconds.
type Overrides struct {
	Stake  string
	Time   int
	Change int
	Args   []string
}

// Load reads config from a YAML (or JSON) file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("NAV_STAKE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.Stake.Decimal = d
		}
	}
	if v := envInt("NAV_UPDATE_INTERVAL"); v != 0 {
		cfg.UpdateInterval = v
	}
	if v := envInt("NAV_CHANGE_INTERVAL"); v != 0 {
		cfg.ChangeInterval = v
	}
	if v := os.Getenv("NAV_CHECKPOINT_MODE"); v != "" {
		cfg.CheckpointMode = v
	}
	if v := os.Getenv("NAV_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("NAV_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("NAV_SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("NAV_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Stake.IsZero() {
		cfg.Stake.Decimal = decimal.NewFromInt(10000)
	}
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = 120
	}
	if cfg.ChangeInterval == 0 {
		cfg.ChangeInterval = 3600
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 10
	}
	if cfg.CheckpointMode == "" {
		cfg.CheckpointMode = "start"
	}
	if cfg.Name == "" {
		cfg.Name = "C20"
	}
	if cfg.URL == "" {
		cfg.URL = "https://crypto20.com/status"
	}
	if cfg.NavPath == "" {
		cfg.NavPath = "$.nav_per_token"
	}
	if cfg.FundPath == "" {
		cfg.FundPath = "$.usd_value"
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "./data.json"
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	return cfg, nil
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

// Apply merges command-line values. Positional arguments win over named flags.
func (c *Config) Apply(o Overrides) error {
	stake := o.Stake
	refresh, change := o.Time, o.Change
	if len(o.Args) > 3 {
		return fmt.Errorf("too many arguments: %v", o.Args)
	}
	if len(o.Args) > 0 {
		stake = o.Args[0]
	}
	if len(o.Args) > 1 {
		n, err := strconv.Atoi(o.Args[1])
		if err != nil {
			return fmt.Errorf("refresh seconds %q: %w", o.Args[1], err)
		}
		refresh = n
	}
	if len(o.Args) > 2 {
		n, err := strconv.Atoi(o.Args[2])
		if err != nil {
			return fmt.Errorf("checkpoint seconds %q: %w", o.Args[2], err)
		}
		change = n
	}

	if stake != "" {
		d, err := decimal.NewFromString(stake)
		if err != nil {
			return fmt.Errorf("stake %q: %w", stake, err)
		}
		c.Stake.Decimal = d
		c.StakeExplicit = true
	}
	if refresh != 0 {
		c.UpdateInterval = refresh
	}
	if change != 0 {
		c.ChangeInterval = change
	}
	return nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if !c.Stake.IsPositive() {
		return fmt.Errorf("stake must be positive")
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("updateInterval must be positive")
	}
	if c.ChangeInterval <= 0 {
		return fmt.Errorf("changeInterval must be positive")
	}
	if c.RetryDelay <= 0 {
		return fmt.Errorf("retryDelay must be positive")
	}
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	switch c.CheckpointMode {
	case "start", "rolling":
	default:
		return fmt.Errorf("checkpointMode must be start or rolling, got %q", c.CheckpointMode)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	return nil
}

func (c *Config) Refresh() time.Duration    { return time.Duration(c.UpdateInterval) * time.Second }
func (c *Config) Checkpoint() time.Duration { return time.Duration(c.ChangeInterval) * time.Second }
func (c *Config) Retry() time.Duration      { return time.Duration(c.RetryDelay) * time.Second }
