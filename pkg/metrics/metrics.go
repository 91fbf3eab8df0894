// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration at the relay.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests at the relay.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TranscriptsForwarded tracks transcript forwarding attempts by outcome.
	TranscriptsForwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_transcripts_forwarded_total",
			Help: "Transcript forwarding attempts by outcome",
		},
		[]string{"outcome"},
	)

	// LeadsForwarded tracks lead forwarding attempts by outcome.
	LeadsForwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_leads_forwarded_total",
			Help: "Lead forwarding attempts by outcome",
		},
		[]string{"outcome"},
	)

	// DownstreamFailures tracks failed deliveries to the downstream system.
	DownstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_downstream_failures_total",
			Help: "Failed downstream deliveries",
		},
		[]string{"kind"},
	)

	// ChatSendDuration tracks chat backend round-trip duration on the client side.
	ChatSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_send_duration_seconds",
			Help:    "Chat backend round-trip duration",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}
