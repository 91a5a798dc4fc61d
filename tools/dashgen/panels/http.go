package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate is the monitor's own HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return line("Request Rate", "Monitor HTTP requests per second, health checks excluded", halfWidth).
		WithTarget(target("A", `chitai:http_requests:rate5m`, "req/s")).
		Unit("reqps").
		Legend(legendTable("mean", "max"))
}

// LatencyPercentiles is p50, p95 and p99 monitor HTTP latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	p := line("Latency Percentiles", "HTTP request duration percentiles", halfWidth).
		Unit("s").
		Legend(legendTable("mean", "max"))

	bucket := onJob("chitai_http_request_duration_seconds_bucket")
	for i, q := range []string{"0.50", "0.95", "0.99"} {
		expr := fmt.Sprintf(`histogram_quantile(%s, sum(rate(%s[5m])) by (le))`, q, bucket)
		p.WithTarget(target(string(rune('A'+i)), expr, "p"+q[2:]))
	}
	return p
}

// ErrorRate is the monitor's 5xx responses as a share of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return line("Error Rate %", "HTTP 5xx error rate as percentage of total requests", thirdWidth).
		WithTarget(target("A", `chitai:http_errors:rate5m / chitai:http_requests:rate5m * 100`, "error %")).
		Unit("percent").
		Thresholds(warnAt(1, 5)).
		ColorScheme(thresholdColors())
}
