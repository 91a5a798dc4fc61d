package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APIRequestRate is requests per second to the site API by endpoint.
func APIRequestRate() *timeseries.PanelBuilder {
	return line("API Requests", "Site API requests per second by endpoint", halfWidth).
		WithTarget(target("A", `sum by (endpoint) (rate(chitai_api_requests_total[5m]))`, "{{endpoint}}")).
		Unit("reqps").
		Legend(legendTable("mean", "max"))
}

// APILatency is p95 site API latency by endpoint.
func APILatency() *timeseries.PanelBuilder {
	return line("API Latency p95", "95th percentile site API request duration by endpoint", halfWidth).
		WithTarget(target("A",
			`histogram_quantile(0.95, sum by (endpoint, le) (rate(chitai_api_request_duration_seconds_bucket[5m])))`,
			"{{endpoint}}",
		)).
		Unit("s").
		Legend(legendTable("mean", "max"))
}

// APIErrorRate is the share of site API responses other than 200.
func APIErrorRate() *timeseries.PanelBuilder {
	return line("API Error %", "Share of site API requests that did not return 200", thirdWidth).
		WithTarget(target("A", `chitai:api_errors:rate5m / chitai:api_requests:rate5m * 100`, "error %")).
		Unit("percent").
		Thresholds(warnAt(5, 20)).
		ColorScheme(thresholdColors())
}

// QuotaExhausted counts requests refused by the local rate-limit window
// over the last day.
func QuotaExhausted() *stat.PanelBuilder {
	return counter("Window Exhausted (24h)",
		"Requests refused because the rate-limit window budget was spent",
		thirdWidth, rowHeight,
	).
		WithTarget(target("A", `increase(chitai_api_quota_exhausted_total[24h])`, "")).
		Thresholds(warnAt(1, 10)).
		GraphMode(common.BigValueGraphModeArea)
}

// DroppedRefs counts product references that had no side-loaded product.
func DroppedRefs() *timeseries.PanelBuilder {
	return bars("Dropped Product Refs", "Search result references without a side-loaded product").
		WithTarget(target("A", `increase(chitai_adapter_dropped_refs_total[1h])`, "dropped/h")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(warnAt(1, 20)).
		ColorScheme(thresholdColors())
}
