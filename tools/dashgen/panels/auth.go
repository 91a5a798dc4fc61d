package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// TokenResolutions is bearer tokens resolved per hour by source (memory,
// cache, static, login).
func TokenResolutions() *timeseries.PanelBuilder {
	return bars("Token Resolutions", "Bearer tokens resolved per hour by source").
		WithTarget(target("A", `sum by (source) (increase(chitai_token_resolutions_total[1h]))`, "{{source}}"))
}

// TokenFailures counts token resolutions that failed over the last day.
func TokenFailures() *stat.PanelBuilder {
	return counter("Token Failures (24h)",
		"Token resolutions that found no source or failed to log in",
		thirdWidth, rowHeight,
	).
		WithTarget(target("A", `increase(chitai_token_failures_total[24h])`, "")).
		Thresholds(warnAt(1, 5)).
		GraphMode(common.BigValueGraphModeArea)
}

// Notifications is webhook notifications sent and failed per hour.
func Notifications() *timeseries.PanelBuilder {
	return bars("Notifications", "Run notifications sent and failed per hour").
		WithTarget(target("A", `increase(chitai_notifications_sent_total[1h])`, "sent")).
		WithTarget(target("B", `increase(chitai_notification_failures_total[1h])`, "failed"))
}
