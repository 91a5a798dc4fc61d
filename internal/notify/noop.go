package notify

import (
	"context"
	"log/slog"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded reports. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards reports with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// NotifyRun logs and discards a run report.
func (n *NoOpNotifier) NotifyRun(_ context.Context, run *domain.SmokeRun) error {
	n.log.Debug("notification discarded (no backend configured)",
		"run_id", run.ID,
		"passed", run.Passed,
		"failed_checks", len(run.FailedChecks()),
	)
	return nil
}
