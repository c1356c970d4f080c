// Package scheduler runs the ingest job on a cron schedule in US Eastern time.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/albapepper/scoracle-boxscores/internal/calendar"
)

// Job is one scheduled run. ctx is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

// Scheduler triggers a Job on a cron spec. A trigger that fires while the
// previous run is still going is skipped.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	job      Job
	logger   *slog.Logger

	ctx     context.Context
	wrapped cron.Job
	wg      sync.WaitGroup
}

// New parses spec (standard five-field cron or a descriptor such as
// "@daily") and prepares a scheduler for job.
func New(spec string, job Job, logger *slog.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		spec:     spec,
		schedule: schedule,
		job:      job,
		logger:   logger,
		ctx:      context.Background(),
	}
	s.wrapped = cron.NewChain(
		cron.Recover(cronLogger{logger}),
		cron.SkipIfStillRunning(cronLogger{logger}),
	).Then(cron.FuncJob(s.runOnce))
	return s, nil
}

// Next returns the first trigger time after t, in Eastern time.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(calendar.Eastern))
}

// Run blocks until ctx is done, triggering the job on schedule. With
// runAtStart the job also runs once immediately. In-flight runs are waited
// for before Run returns.
func (s *Scheduler) Run(ctx context.Context, runAtStart bool) error {
	s.ctx = ctx

	c := cron.New(cron.WithLocation(calendar.Eastern))
	c.Schedule(s.schedule, s.wrapped)

	if runAtStart {
		s.trigger()
	}

	c.Start()
	s.logger.Info("Cron scheduler started", "spec", s.spec, "next_run", s.Next(time.Now()).Format(time.RFC3339))

	<-ctx.Done()
	s.logger.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	s.wg.Wait()
	return nil
}

// trigger starts a run outside the cron clock, subject to the same
// overlap rule.
func (s *Scheduler) trigger() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.wrapped.Run()
	}()
}

func (s *Scheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.job(s.ctx); err != nil {
		s.logger.Error("Scheduled run failed", "error", err, "duration", time.Since(start).Round(time.Second))
		return
	}
	s.logger.Info("Scheduled run finished", "duration", time.Since(start).Round(time.Second))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
