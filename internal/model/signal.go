package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Baseline selects which stored snapshot a delta report is computed against.
type Baseline int

const (
	BaselineStart Baseline = iota
	BaselineCheckpoint
	BaselineSaved
)

// Label is the human name used in "Change since <label>".
func (b Baseline) Label() string {
	switch b {
	case BaselineCheckpoint:
		return "last checkpoint"
	case BaselineSaved:
		return "last saved data"
	default:
		return "start"
	}
}

func (b Baseline) String() string {
	switch b {
	case BaselineCheckpoint:
		return "CHECKPOINT"
	case BaselineSaved:
		return "SAVED"
	default:
		return "START"
	}
}

// Deltas holds signed differences against a baseline.
// Positive follows the NAV direction.
type Deltas struct {
	Nav      decimal.Decimal
	Stake    decimal.Decimal
	Fund     decimal.Decimal
	Positive bool
}

// UpdateReport describes an accepted NAV update. Deltas is nil for the
// first observation of a run that has nothing to compare against.
type UpdateReport struct {
	Time       time.Time
	Nav        decimal.Decimal
	Fund       decimal.Decimal
	StakeValue decimal.Decimal
	Deltas     *Deltas
}

// DeltaReport describes the change between the latest value and a baseline.
type DeltaReport struct {
	Time     time.Time
	Baseline Baseline
	Since    time.Time // run start, used for the elapsed text
	Deltas   Deltas
}
