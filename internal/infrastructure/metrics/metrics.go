package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Token acquisition counters by flow (obo/app) and outcome
	TokenAcquisitionsTotal *prometheus.CounterVec

	// Genie API call latency
	GenieRequestDuration *prometheus.HistogramVec
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genie",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	TokenAcquisitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genie",
			Subsystem: "gateway",
			Name:      "token_acquisitions_total",
			Help:      "Azure AD token acquisitions by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	GenieRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genie",
			Subsystem: "gateway",
			Name:      "upstream_request_duration_seconds",
			Help:      "Genie Conversation API call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation", "status"},
	)

	for _, collector := range []prometheus.Collector{RequestsTotal, TokenAcquisitionsTotal, GenieRequestDuration} {
		if err := prometheus.Register(collector); err != nil {
			log.Warn().Err(err).Msg("metrics registration failed")
		}
	}
}

// RecordRequest increments the HTTP request counter.
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordTokenAcquisition increments the token acquisition counter.
func RecordTokenAcquisition(flow, outcome string) {
	TokenAcquisitionsTotal.WithLabelValues(flow, outcome).Inc()
}

// ObserveGenieRequest records one Genie API call duration.
func ObserveGenieRequest(operation, status string, seconds float64) {
	GenieRequestDuration.WithLabelValues(operation, status).Observe(seconds)
}
