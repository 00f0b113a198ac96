package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"NavSentinel/internal/collector"
	"NavSentinel/internal/fund"
	"NavSentinel/internal/model"
	"NavSentinel/internal/notifier"
	"NavSentinel/internal/recorder"
)

// Intervals configures the three cadences of the driver loop.
type Intervals struct {
	Refresh    time.Duration
	Retry      time.Duration
	Checkpoint time.Duration
}

// Scheduler drives fetches, checkpoint reports and the exit report. All
// tracker access happens on the goroutine running Run; cron only signals
// checkpoint ticks over a channel.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Tracker   *fund.Tracker
	Console   *notifier.Console
	Recorder  recorder.Recorder
	DataFile  string
	Intervals Intervals

	checkpoints chan struct{}
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector, tr *fund.Tracker, con *notifier.Console, rec recorder.Recorder, dataFile string, iv Intervals) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(),
		Collector:   col,
		Tracker:     tr,
		Console:     con,
		Recorder:    rec,
		DataFile:    dataFile,
		Intervals:   iv,
		checkpoints: make(chan struct{}, 1),
	}
}

// Register schedules the checkpoint tick.
func (s *Scheduler) Register() error {
	if s.Intervals.Checkpoint < time.Second {
		return fmt.Errorf("checkpoint interval %v is below one second", s.Intervals.Checkpoint)
	}
	id := s.Cron.Schedule(cron.Every(s.Intervals.Checkpoint), cron.FuncJob(s.tick))
	log.Debug().Int("entry", int(id)).Dur("every", s.Intervals.Checkpoint).Msg("checkpoint registered")
	return nil
}

// tick runs on a cron goroutine. A tick is dropped if the previous one has
// not been handled yet.
func (s *Scheduler) tick() {
	select {
	case s.checkpoints <- struct{}{}:
	default:
		log.Debug().Msg("checkpoint tick dropped")
	}
}

// Run polls immediately, then keeps polling and reporting until ctx is
// cancelled. On cancellation it prints the change since start and returns.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Register(); err != nil {
		return err
	}
	s.Cron.Start()
	defer s.Cron.Stop()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Exit()
			return nil
		case <-timer.C:
			timer.Reset(s.refresh(ctx))
		case <-s.checkpoints:
			s.checkpoint()
		}
	}
}

// Poll runs one fetch, update and report cycle.
func (s *Scheduler) Poll(ctx context.Context) error {
	st, err := s.Collector.Collect(ctx)
	if err != nil {
		return err
	}

	out := s.Tracker.Update(*st)
	if out == nil {
		log.Debug().Str("nav", st.NavPerToken.String()).Msg("nav unchanged")
		return nil
	}

	s.Console.Current(&out.Report)
	if err := s.Recorder.RecordUpdate(&out.Report); err != nil {
		log.Error().Err(err).Msg("record update")
	}
	if out.Restart != nil {
		s.report(out.Restart)
	}

	if err := fund.SaveRecord(s.DataFile, &out.Record); err != nil {
		log.Debug().Err(err).Str("path", s.DataFile).Msg("save record")
		s.Console.Warn("Error writing to file: %v", err)
	}
	return nil
}

// refresh polls and returns the delay before the next poll.
func (s *Scheduler) refresh(ctx context.Context) time.Duration {
	err := s.Poll(ctx)
	if err == nil {
		return s.Intervals.Refresh
	}
	if ctx.Err() != nil {
		return s.Intervals.Retry
	}
	log.Debug().Err(err).Msg("fetch status")
	s.Console.Warn("Error retrieving %s data: %s. Trying again in %s.",
		s.Console.Format.Name, FetchCode(err), notifier.Interval(s.Intervals.Retry))
	return s.Intervals.Retry
}

func (s *Scheduler) checkpoint() {
	s.report(s.Tracker.Checkpoint())
}

// Exit prints the final change-since-start report.
func (s *Scheduler) Exit() {
	s.report(s.Tracker.Exit())
}

func (s *Scheduler) report(r *model.DeltaReport) {
	if r == nil {
		return
	}
	s.Console.Delta(r)
	if err := s.Recorder.RecordDelta(r); err != nil {
		log.Error().Err(err).Msg("record delta")
	}
}

// FetchCode returns the diagnostic code of a fetch failure.
func FetchCode(err error) string {
	var fe *collector.FetchError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return collector.CodeNetwork
}
