package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func upStat(title, description, metric string) *stat.PanelBuilder {
	return counter(title, description, statWidth, statHeight).
		WithTarget(target("A", metric, "")).
		Thresholds(upAt(1)).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat shows /healthz (1 = ok).
func HealthzStat() *stat.PanelBuilder {
	return upStat("Healthz", "Health check status (1 = ok, 0 = failing)", "chitai_healthz_up")
}

// ReadyzStat shows /readyz (1 = ready).
func ReadyzStat() *stat.PanelBuilder {
	return upStat("Readyz", "Readiness check status (1 = ready, 0 = database unreachable)", "chitai_readyz_up")
}

// LastSuccessStat shows how long ago the smoke suite last passed. It turns
// yellow after half an hour and red after an hour.
func LastSuccessStat() *stat.PanelBuilder {
	return counter("Last Passing Run", "Time since the smoke suite last passed", statWidth, statHeight).
		WithTarget(target("A", "time() - "+onJob("chitai_smoke_last_success_timestamp_seconds"), "")).
		Unit("s").
		Thresholds(warnAt(1800, 3600)).
		GraphMode(common.BigValueGraphModeNone)
}

// WindowGauge shows the share of the rate-limit window already spent.
func WindowGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("API Window %").
		Description("Requests spent in the current rate-limit window").
		Datasource(datasource()).
		Height(statHeight).
		Span(statWidth).
		WithTarget(target("A", fmt.Sprintf("chitai_api_window_usage / %d * 100", APIWindowLimit), "")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(warnAt(80, 95)).
		ColorScheme(thresholdColors())
}
