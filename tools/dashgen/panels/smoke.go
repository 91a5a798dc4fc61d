package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RunResults is suite runs per hour split by verdict.
func RunResults() *timeseries.PanelBuilder {
	return bars("Suite Runs", "Smoke suite runs per hour by verdict").
		WithTarget(target("A", `sum by (result) (increase(chitai_smoke_runs_total[1h]))`, "{{result}}")).
		Legend(legendTable("sum"))
}

// CheckFailures is failed and errored checks per hour by check name.
func CheckFailures() *timeseries.PanelBuilder {
	return bars("Check Failures", "Failed or errored checks per hour by check name").
		WithTarget(target("A",
			`sum by (check, status) (increase(chitai_smoke_checks_total{status!="passed"}[1h]))`,
			"{{check}} {{status}}",
		)).
		Legend(legendTable("sum"))
}

// CheckDuration is p95 check duration by check name.
func CheckDuration() *timeseries.PanelBuilder {
	return line("Check Duration p95", "95th percentile smoke check duration", thirdWidth).
		WithTarget(target("A",
			`histogram_quantile(0.95, sum by (check, le) (rate(chitai_smoke_check_duration_seconds_bucket[1h])))`,
			"{{check}}",
		)).
		Unit("s").
		Legend(legendTable("mean", "max"))
}
