// Package monitor runs the smoke suite on a schedule and exposes health and
// metrics endpoints while it does.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const pruneSchedule = "@daily"

// ErrRunInProgress is returned by RunNow when another run has not finished.
var ErrRunInProgress = errors.New("smoke run already in progress")

// Runner executes one smoke run. *smoke.Suite implements it.
type Runner interface {
	Run(ctx context.Context) (*domain.SmokeRun, error)
}

// Pruner deletes old run history. The store implements it.
type Pruner interface {
	PruneRuns(ctx context.Context, olderThan time.Duration) (int, error)
}

// Scheduler runs the suite at a fixed interval. A tick that arrives while a
// run is still going is skipped.
type Scheduler struct {
	cron       *cron.Cron
	smokeID    cron.EntryID
	runner     Runner
	pruner     Pruner
	retention  time.Duration
	runTimeout time.Duration
	log        *slog.Logger
	last       atomic.Pointer[domain.SmokeRun]
	running    sync.Mutex
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithPruner deletes runs older than retention once a day.
func WithPruner(p Pruner, retention time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.pruner = p
		s.retention = retention
	}
}

// WithRunTimeout bounds a single scheduled run.
func WithRunTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.runTimeout = d
	}
}

// WithSchedulerLogger sets the logger.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.log = l
	}
}

// NewScheduler registers the smoke run every interval.
func NewScheduler(runner Runner, interval time.Duration, opts ...SchedulerOption) (*Scheduler, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("interval %s is shorter than one second", interval)
	}

	s := &Scheduler{
		runner: runner,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runTimeout == 0 {
		s.runTimeout = interval
	}

	cl := cronLogger{log: s.log}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(
		cron.Recover(cl),
		cron.SkipIfStillRunning(cl),
	))

	id, err := s.cron.AddFunc("@every "+interval.String(), s.runSmoke)
	if err != nil {
		return nil, err
	}
	s.smokeID = id

	if s.pruner != nil && s.retention > 0 {
		if _, err := s.cron.AddFunc(pruneSchedule, s.prune); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "entries", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns when the smoke run fires next, or the zero time if the
// scheduler is not started.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.smokeID).Next
}

// LastRun returns the most recent completed run, or nil.
func (s *Scheduler) LastRun() *domain.SmokeRun {
	return s.last.Load()
}

// RunNow executes one smoke run synchronously and remembers it as the last
// run. Scheduled and on-demand runs never overlap: while one is going,
// RunNow returns ErrRunInProgress.
func (s *Scheduler) RunNow(ctx context.Context) (*domain.SmokeRun, error) {
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	run, err := s.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.last.Store(run)
	return run, nil
}

func (s *Scheduler) runSmoke() {
	s.log.Info("scheduled smoke run starting")
	run, err := s.RunNow(context.Background())
	if errors.Is(err, ErrRunInProgress) {
		s.log.Info("skipping scheduled smoke run, previous run still going")
		return
	}
	if err != nil {
		s.log.Error("scheduled smoke run failed", "error", err)
		return
	}
	s.log.Info("scheduled smoke run finished",
		"run_id", run.ID,
		"passed", run.Passed,
		"next", s.NextRun(),
	)
}

func (s *Scheduler) prune() {
	n, err := s.pruner.PruneRuns(context.Background(), s.retention)
	if err != nil {
		s.log.Error("pruning run history", "error", err)
		return
	}
	s.log.Info("pruned run history", "deleted", n, "retention", s.retention)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
