// Package panels builds the panels of the chitai-qa overview dashboard.
// Panels query the ${datasource} variable and are sized for Grafana's
// 24-column grid.
package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const (
	// APIWindowLimit matches the default api.rate_limit.window_limit.
	APIWindowLimit = 500

	// Job is the scrape job of the monitor.
	Job = "chitai-qa"
)

const (
	statWidth  = 6
	statHeight = 4
	halfWidth  = 12
	thirdWidth = 8
	rowHeight  = 8
)

func datasource() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

func target(refID, expr, legend string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		RefId(refID).
		Expr(expr).
		LegendFormat(legend)
}

// onJob scopes a metric selector to the monitor's scrape job.
func onJob(metric string) string {
	return fmt.Sprintf("%s{job=%q}", metric, Job)
}

// line is a timeseries panel with the dashboard's default styling.
func line(title, description string, width int) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(rowHeight).
		Span(width).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(allSeriesTooltip()).
		Thresholds(plain()).
		ColorScheme(paletteColors()).
		DrawStyle(common.GraphDrawStyleLine)
}

// bars is a third-width bar chart for hourly counts.
func bars(title, description string) *timeseries.PanelBuilder {
	return line(title, description, thirdWidth).
		FillOpacity(30).
		LineWidth(1).
		DrawStyle(common.GraphDrawStyleBars)
}

// counter is a stat panel whose background follows its thresholds.
func counter(title, description string, width, height int) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(height).
		Span(width).
		ColorScheme(thresholdColors()).
		ColorMode(common.BigValueColorModeBackground)
}

type step struct {
	at    float64
	color string
}

func steps(base string, above ...step) cog.Builder[dashboard.ThresholdsConfig] {
	ts := []dashboard.Threshold{{Color: base}}
	for _, s := range above {
		ts = append(ts, dashboard.Threshold{Value: cog.ToPtr(s.at), Color: s.color})
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(ts)
}

// upAt is red until v, green from v.
func upAt(v float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps("red", step{v, "green"})
}

// warnAt is green, then yellow from warn and red from crit.
func warnAt(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps("green", step{warn, "yellow"}, step{crit, "red"})
}

func plain() cog.Builder[dashboard.ThresholdsConfig] {
	return steps("green")
}

func thresholdColors() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)
}

func paletteColors() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdPaletteClassic)
}

func legendTable(calcs ...string) *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs(calcs)
}

func allSeriesTooltip() *common.VizTooltipOptionsBuilder {
	return common.NewVizTooltipOptionsBuilder().
		Mode(common.TooltipDisplayModeMulti).
		Sort(common.SortOrderDescending)
}
