package comparisons

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/JaimeStill/vantage/pkg/lifecycle"
)

// Scheduler periodically recomputes every board. Runs that overlap a
// previous run are skipped.
type Scheduler struct {
	sys     System
	logger  *slog.Logger
	cron    *cron.Cron
	timeout time.Duration
	running atomic.Bool
}

// NewScheduler parses a standard five-field cron expression. Each run is
// bounded by timeout.
func NewScheduler(sys System, spec string, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse recompute schedule %q: %w", spec, err)
	}

	logger = logger.With("component", "scheduler")
	adapter := cronLogger{logger: logger}

	s := &Scheduler{
		sys:     sys,
		logger:  logger,
		timeout: timeout,
		cron: cron.New(
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
	}

	s.cron.Schedule(schedule, cron.FuncJob(s.Run))
	return s, nil
}

// Start runs the cron loop once startup begins and stops it on shutdown,
// waiting for an in-flight run to finish.
func (s *Scheduler) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		s.cron.Start()
		s.running.Store(true)
		s.logger.Info("recompute scheduler started")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.running.Store(false)
		<-s.cron.Stop().Done()
		s.logger.Info("recompute scheduler stopped")
	})
}

// Ready reports whether the cron loop is running.
func (s *Scheduler) Ready() bool {
	return s.running.Load()
}

// Run recomputes every board once.
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.sys.RecomputeAll(ctx); err != nil {
		s.logger.Error("scheduled recompute failed", "error", err)
	}
}

// cronLogger routes cron's logging through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
