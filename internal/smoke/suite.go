// Package smoke runs the site API smoke checks and records their outcome.
package smoke

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
	"github.com/donaldgifford/chitai-gorod-qa/internal/metrics"
	"github.com/donaldgifford/chitai-gorod-qa/internal/notify"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const (
	defaultParallelism  = 2
	defaultCheckTimeout = 30 * time.Second

	// TriggerManual marks runs started from the command line.
	TriggerManual = "manual"
	// TriggerSchedule marks runs started by the monitor.
	TriggerSchedule = "schedule"
)

// Recorder persists smoke runs. The store implements it.
type Recorder interface {
	InsertRun(ctx context.Context, run *domain.SmokeRun) error
	InsertCheckResult(ctx context.Context, result *domain.CheckResult) error
	CompleteRun(ctx context.Context, run *domain.SmokeRun) error
}

// Suite runs a fixed set of checks against the API.
type Suite struct {
	api          chitai.API
	checks       []Check
	parallelism  int
	checkTimeout time.Duration
	trigger      string
	recorder     Recorder
	notifier     notify.Notifier
	notifyPassed bool
	log          *slog.Logger
	nowFunc      func() time.Time
}

// Option configures the Suite.
type Option func(*Suite)

// WithChecks replaces the registered checks.
func WithChecks(checks ...Check) Option {
	return func(s *Suite) {
		s.checks = checks
	}
}

// WithParallelism caps how many checks run at once.
func WithParallelism(n int) Option {
	return func(s *Suite) {
		s.parallelism = n
	}
}

// WithCheckTimeout bounds each check.
func WithCheckTimeout(d time.Duration) Option {
	return func(s *Suite) {
		s.checkTimeout = d
	}
}

// WithTrigger labels runs with what started them.
func WithTrigger(trigger string) Option {
	return func(s *Suite) {
		s.trigger = trigger
	}
}

// WithRecorder persists runs and check results.
func WithRecorder(r Recorder) Option {
	return func(s *Suite) {
		s.recorder = r
	}
}

// WithNotifier reports failed runs. When notifyPassed is set, passing runs
// are reported too.
func WithNotifier(n notify.Notifier, notifyPassed bool) Option {
	return func(s *Suite) {
		s.notifier = n
		s.notifyPassed = notifyPassed
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Suite) {
		s.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(s *Suite) {
		s.nowFunc = f
	}
}

// NewSuite creates a suite over api. Without WithChecks it registers
// DefaultChecks with the given inputs.
func NewSuite(api chitai.API, in Inputs, opts ...Option) *Suite {
	s := &Suite{
		api:          api,
		checks:       DefaultChecks(in),
		parallelism:  defaultParallelism,
		checkTimeout: defaultCheckTimeout,
		trigger:      TriggerManual,
		log:          slog.New(slog.DiscardHandler),
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parallelism < 1 {
		s.parallelism = 1
	}
	return s
}

// Checks returns the registered check names in order.
func (s *Suite) Checks() []string {
	names := make([]string, len(s.checks))
	for i := range s.checks {
		names[i] = s.checks[i].Name
	}
	return names
}

// Run executes every check and returns the run. Checks run concurrently
// but results keep registration order. A run passes iff every check
// passes. Recording and notification failures are logged, not returned;
// the only error is a canceled context.
func (s *Suite) Run(ctx context.Context) (*domain.SmokeRun, error) {
	run := &domain.SmokeRun{
		ID:        uuid.NewString(),
		StartedAt: s.nowFunc(),
		Trigger:   s.trigger,
	}

	log := s.log.With("run_id", run.ID, "trigger", run.Trigger)
	log.Info("smoke run started", "checks", len(s.checks))

	if s.recorder != nil {
		if err := s.recorder.InsertRun(ctx, run); err != nil {
			log.Warn("recording run start", "error", err)
		}
	}

	results := make([]domain.CheckResult, len(s.checks))

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i := range s.checks {
		g.Go(func() error {
			results[i] = s.runCheck(ctx, run.ID, &s.checks[i])
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // checks never return errors to the group

	completed := s.nowFunc()
	run.CompletedAt = &completed
	run.Results = results

	if err := ctx.Err(); err != nil {
		// Close out the recorded run as failed so it is not left open.
		s.record(context.WithoutCancel(ctx), log, run)
		log.Warn("smoke run canceled", "error", err)
		return nil, fmt.Errorf("smoke run %s: %w", run.ID, err)
	}

	run.Passed = len(results) > 0 && len(run.FailedChecks()) == 0

	s.observe(run)
	s.record(ctx, log, run)
	s.notify(ctx, log, run)

	log.Info("smoke run completed",
		"passed", run.Passed,
		"failed", len(run.FailedChecks()),
		"duration", run.Duration(),
	)

	return run, nil
}

func (s *Suite) runCheck(ctx context.Context, runID string, c *Check) domain.CheckResult {
	cctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	start := s.nowFunc()
	outcome, err := c.Run(cctx, s.api)
	elapsed := s.nowFunc().Sub(start)

	res := domain.CheckResult{
		RunID:      runID,
		Name:       c.Name,
		Message:    outcome.Message,
		Details:    outcome.Details,
		DurationMS: elapsed.Milliseconds(),
	}

	switch {
	case err != nil:
		res.Status = domain.CheckErrored
		res.Message = err.Error()
	case outcome.Passed:
		res.Status = domain.CheckPassed
	default:
		res.Status = domain.CheckFailed
	}

	metrics.SmokeChecksTotal.WithLabelValues(c.Name, string(res.Status)).Inc()
	metrics.SmokeCheckDuration.WithLabelValues(c.Name).Observe(elapsed.Seconds())

	s.log.Debug("check finished",
		"run_id", runID,
		"check", c.Name,
		"status", res.Status,
		"duration_ms", res.DurationMS,
	)

	return res
}

func (s *Suite) observe(run *domain.SmokeRun) {
	if run.Passed {
		metrics.SmokeRunsTotal.WithLabelValues("passed").Inc()
		metrics.SmokeLastSuccess.Set(float64(run.CompletedAt.Unix()))
		return
	}
	metrics.SmokeRunsTotal.WithLabelValues("failed").Inc()
}

func (s *Suite) record(ctx context.Context, log *slog.Logger, run *domain.SmokeRun) {
	if s.recorder == nil {
		return
	}
	for i := range run.Results {
		if err := s.recorder.InsertCheckResult(ctx, &run.Results[i]); err != nil {
			log.Warn("recording check result", "check", run.Results[i].Name, "error", err)
		}
	}
	if err := s.recorder.CompleteRun(ctx, run); err != nil {
		log.Warn("recording run completion", "error", err)
	}
}

func (s *Suite) notify(ctx context.Context, log *slog.Logger, run *domain.SmokeRun) {
	if s.notifier == nil || (run.Passed && !s.notifyPassed) {
		return
	}
	if err := s.notifier.NotifyRun(ctx, run); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		log.Error("sending run notification", "error", err)
		return
	}
	metrics.NotificationsSentTotal.Inc()
}
