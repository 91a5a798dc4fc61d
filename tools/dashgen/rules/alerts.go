package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the
// chitai-qa monitor.
func AlertRules() PrometheusRule {
	return newPrometheusRule("chitai-qa-alerts", RuleGroup{
		Name: "chitai-qa-alerts",
		Rules: []Rule{
			{
				Alert: "ChitaiQADown",
				Expr:  `absent(up{job="chitai-qa"})`,
				For:   "2m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "chitai-qa monitor is down",
					"description": "The chitai-qa job has been absent for more than 2 minutes.",
				},
			},
			{
				Alert: "ChitaiQAReadinessDown",
				Expr:  `chitai_readyz_up == 0`,
				For:   "2m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "chitai-qa cannot reach its run history database",
					"description": "The readiness check has been failing for more than 2 minutes. Runs continue but are not recorded.",
				},
			},
			{
				Alert: "ChitaiSmokeFailing",
				Expr:  `chitai:smoke_failed_runs:increase1h >= 2`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "chitai-gorod.ru smoke suite is failing",
					"description": "At least two smoke runs failed in the last hour. Run `chitai-qa history --failed` for details.",
				},
			},
			{
				Alert: "ChitaiSmokeStale",
				Expr:  `time() - chitai_smoke_last_success_timestamp_seconds > 3600`,
				For:   "10m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "No passing smoke run in the last hour",
					"description": "The smoke suite has not passed for more than an hour.",
				},
			},
			{
				Alert: "ChitaiAPIErrorRate",
				Expr:  `chitai:api_errors:rate5m / chitai:api_requests:rate5m > 0.2`,
				For:   "10m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "High non-200 rate from the chitai-gorod.ru API",
					"description": "More than 20% of site API requests returned a non-200 status over 10 minutes.",
				},
			},
			{
				Alert: "ChitaiAPIWindowExhausted",
				Expr:  `increase(chitai_api_quota_exhausted_total[5m]) > 0`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Rate-limit window budget spent",
					"description": "Requests are being refused locally until the rate-limit window resets.",
				},
			},
			{
				Alert: "ChitaiTokenFailures",
				Expr:  `increase(chitai_token_failures_total[15m]) > 0`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Bearer token resolution is failing",
					"description": "No token source is configured or the login endpoint is rejecting the credentials.",
				},
			},
			{
				Alert: "ChitaiNotificationFailures",
				Expr:  `increase(chitai_notification_failures_total[5m]) > 0`,
				For:   "1m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Notification delivery failures detected",
					"description": "One or more run notifications (Discord webhooks) have failed to send.",
				},
			},
		},
	})
}
