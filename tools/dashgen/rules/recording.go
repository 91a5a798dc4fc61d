package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("chitai-qa-recording-rules", RuleGroup{
		Name: "chitai-qa-recording",
		Rules: []Rule{
			{
				Record: "chitai:http_requests:rate5m",
				Expr:   `sum(rate(chitai_http_requests_total[5m]))`,
			},
			{
				Record: "chitai:http_errors:rate5m",
				Expr:   `sum(rate(chitai_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "chitai:api_requests:rate5m",
				Expr:   `sum(rate(chitai_api_requests_total[5m]))`,
			},
			{
				Record: "chitai:api_errors:rate5m",
				Expr:   `sum(rate(chitai_api_requests_total{status!="200"}[5m]))`,
			},
			{
				Record: "chitai:smoke_failed_runs:increase1h",
				Expr:   `sum(increase(chitai_smoke_runs_total{result="failed"}[1h]))`,
			},
		},
	})
}
