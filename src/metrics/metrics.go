package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SwapMetrics holds the counters and histograms for the quote pipeline.
type SwapMetrics struct {
	SwapsStartedTotal   prometheus.Counter
	SwapsCompletedTotal prometheus.Counter
	SwapsFailedTotal    prometheus.CounterVec

	SwapDuration prometheus.HistogramVec

	ProviderRequestsTotal   prometheus.CounterVec
	ProviderRequestDuration prometheus.HistogramVec
}

// NewSwapMetrics registers all metrics on reg. Pass a fresh
// prometheus.NewRegistry() in tests to keep registrations isolated.
func NewSwapMetrics(reg prometheus.Registerer) *SwapMetrics {
	f := promauto.With(reg)
	return &SwapMetrics{
		SwapsStartedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "swap_quotes_started_total",
			Help: "Total number of swap quote pipelines started",
		}),

		SwapsCompletedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "swap_quotes_completed_total",
			Help: "Total number of swap quote pipelines that produced a spend",
		}),

		SwapsFailedTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swap_quotes_failed_total",
				Help: "Total number of failed swap quote pipelines by error kind",
			},
			[]string{"reason"},
		),

		SwapDuration: *f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swap_quote_duration_seconds",
				Help:    "Wall time of the full quote pipeline in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"outcome"},
		),

		ProviderRequestsTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_requests_total",
				Help: "Total number of provider HTTP requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		ProviderRequestDuration: *f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_request_duration_seconds",
				Help:    "Latency of provider HTTP requests in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"endpoint"},
		),
	}
}

// RecordSwapStarted marks the beginning of a quote pipeline.
func (m *SwapMetrics) RecordSwapStarted() {
	m.SwapsStartedTotal.Inc()
}

// RecordSwapCompleted marks a successful pipeline run.
func (m *SwapMetrics) RecordSwapCompleted(durationSeconds float64) {
	m.SwapsCompletedTotal.Inc()
	m.SwapDuration.WithLabelValues("success").Observe(durationSeconds)
}

// RecordSwapFailed marks a failed pipeline run with its error kind.
func (m *SwapMetrics) RecordSwapFailed(reason string, durationSeconds float64) {
	m.SwapsFailedTotal.WithLabelValues(reason).Inc()
	m.SwapDuration.WithLabelValues("failure").Observe(durationSeconds)
}

// RecordProviderRequest records one provider HTTP exchange.
func (m *SwapMetrics) RecordProviderRequest(endpoint, outcome string, durationSeconds float64) {
	m.ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.ProviderRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}
