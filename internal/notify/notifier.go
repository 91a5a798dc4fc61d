// Package notify defines the notification interface and implementations
// for smoke run reports.
package notify

import (
	"context"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// Notifier defines the interface for reporting smoke runs.
type Notifier interface {
	NotifyRun(ctx context.Context, run *domain.SmokeRun) error
}
