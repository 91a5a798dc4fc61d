package main

import "errors"

// KnownMetrics is the set of metric names exported by chitai-qa plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Monitor HTTP metrics.
	"chitai_http_request_duration_seconds": true,
	"chitai_http_requests_total":           true,

	// Health metrics.
	"chitai_healthz_up": true,
	"chitai_readyz_up":  true,

	// Site API metrics.
	"chitai_api_requests_total":           true,
	"chitai_api_request_duration_seconds": true,
	"chitai_api_quota_exhausted_total":    true,
	"chitai_api_window_usage":             true,
	"chitai_adapter_dropped_refs_total":   true,

	// Token metrics.
	"chitai_token_resolutions_total": true,
	"chitai_token_failures_total":    true,

	// Smoke suite metrics.
	"chitai_smoke_runs_total":                     true,
	"chitai_smoke_checks_total":                   true,
	"chitai_smoke_check_duration_seconds":         true,
	"chitai_smoke_last_success_timestamp_seconds": true,

	// Notification metrics.
	"chitai_notifications_sent_total":    true,
	"chitai_notification_failures_total": true,

	// Recording rules.
	"chitai:http_requests:rate5m":         true,
	"chitai:http_errors:rate5m":           true,
	"chitai:api_requests:rate5m":          true,
	"chitai:api_errors:rate5m":            true,
	"chitai:smoke_failed_runs:increase1h": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
