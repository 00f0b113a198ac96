package fund

import (
	"time"

	"github.com/shopspring/decimal"

	"NavSentinel/internal/calculator"
	"NavSentinel/internal/model"
)

// CheckpointMode selects the baseline used by periodic checkpoint reports.
type CheckpointMode string

const (
	// CheckpointStart diffs every checkpoint against the run start.
	CheckpointStart CheckpointMode = "start"
	// CheckpointRolling diffs against the previous checkpoint, then moves it forward.
	CheckpointRolling CheckpointMode = "rolling"
)

// Outcome is the result of an accepted update. Restart is set only on the
// first update of a run that found a complete saved record.
type Outcome struct {
	Report  model.UpdateReport
	Restart *model.DeltaReport
	Record  model.Record
}

// Tracker holds the value-tracking state of one run.
// It is not safe for concurrent use; the scheduler goroutine owns it.
type Tracker struct {
	stake decimal.Decimal
	saved *model.Record
	mode  CheckpointMode
	state model.TrackedState
	now   func() time.Time
}

// NewTracker creates a Tracker for stake units. saved may be nil.
func NewTracker(stake decimal.Decimal, saved *model.Record, mode CheckpointMode) *Tracker {
	if mode == "" {
		mode = CheckpointStart
	}
	return &Tracker{stake: stake, saved: saved, mode: mode, now: time.Now}
}

// SetClock replaces the time source.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// Stake returns the fixed stake size.
func (t *Tracker) Stake() decimal.Decimal { return t.stake }

// State returns a copy of the current state.
func (t *Tracker) State() model.TrackedState { return t.state }

// Update applies a fetched status. It returns nil when the NAV equals the
// last observed NAV.
func (t *Tracker) Update(st model.Status) *Outcome {
	nav := st.NavPerToken
	if nav.Equal(t.state.LastNav) {
		return nil
	}

	now := t.now()
	fund := calculator.FundThousands(st.USDValue)
	out := &Outcome{
		Report: model.UpdateReport{
			Time:       now,
			Nav:        nav,
			Fund:       fund,
			StakeValue: calculator.StakeValue(nav, t.stake),
		},
	}
	if !t.state.LastNav.IsZero() {
		deltas := calculator.Compare(nav, fund, t.state.LastNav, t.state.LastFund, t.stake)
		out.Report.Deltas = &deltas
	}

	t.state.LastNav = nav
	t.state.LastFund = fund

	if t.state.StartTime.IsZero() {
		if t.saved.Complete() {
			t.state.StartNav = t.saved.Nav
			t.state.StartFund = t.saved.Fund
			t.state.StartTime = t.saved.Time
			out.Restart = t.Delta(model.BaselineSaved)
		}
		// The run baseline is always the first live value, even after a restart report.
		t.state.StartNav = nav
		t.state.StartFund = fund
		t.state.StartTime = now
		t.state.CheckpointNav = nav
		t.state.CheckpointFund = fund
	}

	out.Record = model.Record{
		Nav:  nav,
		Fund: calculator.Thousands(st.USDValue),
		Time: now,
	}
	return out
}

// Delta compares the latest value against the selected baseline. It returns
// nil before the first update or when the NAV has not moved from the baseline.
func (t *Tracker) Delta(b model.Baseline) *model.DeltaReport {
	if t.state.StartTime.IsZero() {
		return nil
	}

	baseNav, baseFund, since := t.state.StartNav, t.state.StartFund, t.state.StartTime
	switch b {
	case model.BaselineCheckpoint:
		baseNav, baseFund = t.state.CheckpointNav, t.state.CheckpointFund
	case model.BaselineSaved:
		if !t.saved.Complete() {
			return nil
		}
		baseNav, baseFund = t.saved.Nav, t.saved.Fund
	}
	if t.state.LastNav.Equal(baseNav) {
		return nil
	}

	return &model.DeltaReport{
		Time:     t.now(),
		Baseline: b,
		Since:    since,
		Deltas:   calculator.Compare(t.state.LastNav, t.state.LastFund, baseNav, baseFund, t.stake),
	}
}

// Checkpoint produces the periodic report for the configured mode.
func (t *Tracker) Checkpoint() *model.DeltaReport {
	if t.mode != CheckpointRolling {
		return t.Delta(model.BaselineStart)
	}
	r := t.Delta(model.BaselineCheckpoint)
	if !t.state.StartTime.IsZero() {
		t.state.CheckpointNav = t.state.LastNav
		t.state.CheckpointFund = t.state.LastFund
	}
	return r
}

// Exit produces the final change-since-start report.
func (t *Tracker) Exit() *model.DeltaReport {
	return t.Delta(model.BaselineStart)
}
