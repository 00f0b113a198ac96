package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackedState is the in-memory state of a monitoring run.
// A zero StartTime means no baseline has been captured yet.
type TrackedState struct {
	LastNav  decimal.Decimal
	LastFund decimal.Decimal // thousands of currency units, rounded

	StartNav  decimal.Decimal
	StartFund decimal.Decimal
	StartTime time.Time

	CheckpointNav  decimal.Decimal
	CheckpointFund decimal.Decimal
}

// Record is the last observation persisted to disk between runs.
// Fund is the raw usd_value/1000, not rounded.
type Record struct {
	Nav  decimal.Decimal
	Fund decimal.Decimal
	Time time.Time
}

// Complete reports whether every field carries a value.
func (r *Record) Complete() bool {
	return r != nil && !r.Nav.IsZero() && !r.Fund.IsZero() && !r.Time.IsZero()
}
