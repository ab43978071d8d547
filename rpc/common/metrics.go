package common

import (
	"fmt"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
)

var (
	// SessionsTotal counts all accepted connections
	SessionsTotal = metrics.GetOrCreateCounter("roads_sessions_total")
	// SessionsActive counts the currently open sessions
	SessionsActive = metrics.GetOrCreateCounter("roads_sessions_active")
	// StoreErrorsTotal counts commands answered with the store error response
	StoreErrorsTotal = metrics.GetOrCreateCounter("roads_store_errors_total")
)

// CommandCounter returns the counter for commands of the given kind
func CommandCounter(kind string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`roads_commands_total{kind=%q}`, kind))
}

// CommandDuration returns the latency summary for commands of the given kind
func CommandDuration(kind string) *metrics.Summary {
	return metrics.GetOrCreateSummary(fmt.Sprintf(`roads_command_duration_seconds{kind=%q}`, kind))
}

// MetricsHandler writes all metrics in the prometheus text format
func MetricsHandler(w http.ResponseWriter, _ *http.Request) {
	metrics.WritePrometheus(w, true)
}

// ServeMetrics serves the metrics on endpoint under /metrics. It blocks like http.ListenAndServe
func ServeMetrics(endpoint string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", MetricsHandler)
	return http.ListenAndServe(endpoint, mux)
}
