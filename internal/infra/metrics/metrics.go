package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequestDuration tracks the latency of one call to the external
	// completion endpoint. Outcome is success, status, or transport.
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uniai_provider_request_duration_seconds",
			Help:    "Latency of calls to the external LLM provider",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider", "outcome"},
	)

	// CompletionAttempts counts individual attempts inside the retry loop.
	CompletionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniai_completion_attempts_total",
			Help: "Completion attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RecoveryFailures counts model replies that could not be recovered into
	// the expected schedule shape.
	RecoveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "uniai_output_recovery_failures_total",
			Help: "Model replies rejected by the output recovery parser",
		},
	)
)
