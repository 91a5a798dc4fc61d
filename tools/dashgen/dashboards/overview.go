// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/panels"
)

// OverviewUID is the stable dashboard UID.
const OverviewUID = "chitai-qa-overview"

// BuildOverview constructs the chitai-qa overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Chitai QA Overview").
		Uid(OverviewUID).
		Tags([]string{"chitai-qa", "smoke"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.LastSuccessStat()).
		WithPanel(panels.WindowGauge()))

	b.WithRow(dashboard.NewRowBuilder("Smoke Suite").
		WithPanel(panels.RunResults()).
		WithPanel(panels.CheckFailures()).
		WithPanel(panels.CheckDuration()))

	b.WithRow(dashboard.NewRowBuilder("Site API").
		WithPanel(panels.APIRequestRate()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.APIErrorRate()).
		WithPanel(panels.QuotaExhausted()).
		WithPanel(panels.DroppedRefs()))

	b.WithRow(dashboard.NewRowBuilder("Auth & Notifications").
		WithPanel(panels.TokenResolutions()).
		WithPanel(panels.TokenFailures()).
		WithPanel(panels.Notifications()))

	b.WithRow(dashboard.NewRowBuilder("Monitor HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
