package scheduler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"NavSentinel/internal/collector"
	"NavSentinel/internal/fund"
	"NavSentinel/internal/model"
	"NavSentinel/internal/notifier"
	"NavSentinel/internal/recorder"
)

// cancelingFetcher cancels the run once the scripted results are used up.
type cancelingFetcher struct {
	*collector.MockFetcher
	cancel context.CancelFunc
}

func (f *cancelingFetcher) FetchStatus(ctx context.Context) (*model.Status, error) {
	st, err := f.MockFetcher.FetchStatus(ctx)
	if f.Calls() >= len(f.Results) {
		f.cancel()
	}
	return st, err
}

func newTestScheduler(t *testing.T, f collector.Fetcher, saved *model.Record) (*Scheduler, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	tr := fund.NewTracker(decimal.NewFromInt(10000), saved, fund.CheckpointStart)
	s := NewScheduler(
		collector.NewCollector(f),
		tr,
		notifier.NewConsole(&out, "C20", false),
		recorder.NewNoopRecorder(),
		filepath.Join(t.TempDir(), "data.json"),
		Intervals{Refresh: 5 * time.Millisecond, Retry: time.Millisecond, Checkpoint: time.Hour},
	)
	return s, &out
}

func TestRun_PollsRetriesAndReportsOnExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := &cancelingFetcher{
		MockFetcher: &collector.MockFetcher{Results: []collector.MockResult{
			{Nav: "2.0", USD: "30000000"},
			{Err: &collector.FetchError{Code: collector.CodeTimeout, Err: errors.New("slow")}},
			{Nav: "2.0", USD: "30000000"},
			{Nav: "2.2", USD: "33000000"},
		}},
		cancel: cancel,
	}
	s, out := newTestScheduler(t, f, nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "C20 value: $2.0000.  C20 Fund: $30,000K.  Stake value: $20,000.") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Error retrieving C20 data: ETIMEDOUT.") {
		t.Errorf("warning line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "C20 value: $2.2000 (+$0.2000)") || !strings.Contains(lines[2], "Stake value: $22,000 (+$2,000)") {
		t.Errorf("update line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Change since start") || !strings.Contains(lines[3], "C20 Fund: +$3,000K") {
		t.Errorf("exit line = %q", lines[3])
	}

	rec := fund.LoadRecord(s.DataFile)
	if rec == nil || !rec.Nav.Equal(decimal.RequireFromString("2.2")) || !rec.Fund.Equal(decimal.NewFromInt(33000)) {
		t.Errorf("saved record = %+v", rec)
	}
}

func TestPoll_RestartReport(t *testing.T) {
	saved := &model.Record{Nav: decimal.RequireFromString("1.5"), Fund: decimal.NewFromInt(100), Time: time.Now().Add(-3 * time.Hour)}
	s, out := newTestScheduler(t, &collector.MockFetcher{Results: []collector.MockResult{{Nav: "1.6", USD: "110000"}}}, saved)

	if err := s.Poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected update and restart lines, got:\n%s", out.String())
	}
	if !strings.Contains(lines[1], "Change since last saved data") || !strings.Contains(lines[1], "C20 value: +$0.1000") {
		t.Errorf("restart line = %q", lines[1])
	}
}

func TestPoll_WriteFailureWarns(t *testing.T) {
	s, out := newTestScheduler(t, &collector.MockFetcher{Results: []collector.MockResult{{Nav: "1.6", USD: "1000"}}}, nil)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	s.DataFile = filepath.Join(blocker, "data.json")

	if err := s.Poll(context.Background()); err != nil {
		t.Fatalf("write failure must not fail the poll: %v", err)
	}
	if !strings.Contains(out.String(), "Error writing to file:") {
		t.Errorf("expected write warning, got:\n%s", out.String())
	}
	if got := s.Tracker.State().LastNav; !got.Equal(decimal.RequireFromString("1.6")) {
		t.Errorf("tracker must keep the update, last nav = %s", got)
	}
}

func TestCheckpoint(t *testing.T) {
	s, out := newTestScheduler(t, &collector.MockFetcher{Results: []collector.MockResult{
		{Nav: "2.0", USD: "1000"},
		{Nav: "1.9", USD: "1000"},
	}}, nil)

	s.checkpoint()
	if out.Len() != 0 {
		t.Fatalf("checkpoint before the first update must be silent, got %q", out.String())
	}
	ctx := context.Background()
	s.Poll(ctx)
	s.Poll(ctx)
	out.Reset()

	s.checkpoint()
	if !strings.Contains(out.String(), "Change since start") || !strings.Contains(out.String(), "C20 value: -$0.1000") {
		t.Errorf("checkpoint line = %q", out.String())
	}
}

func TestRegister(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{}, nil)
	if err := s.Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}

	s.Intervals.Checkpoint = time.Millisecond
	if err := s.Register(); err == nil {
		t.Error("expected error for a sub-second checkpoint")
	}
}

func TestTickDoesNotBlock(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{}, nil)
	s.tick()
	s.tick()
	if len(s.checkpoints) != 1 {
		t.Errorf("pending ticks = %d, want 1", len(s.checkpoints))
	}
}

func TestFetchCode(t *testing.T) {
	if got := FetchCode(&collector.FetchError{Code: "HTTP_502"}); got != "HTTP_502" {
		t.Errorf("code = %s", got)
	}
	if got := FetchCode(errors.New("plain")); got != collector.CodeNetwork {
		t.Errorf("code = %s", got)
	}
}
