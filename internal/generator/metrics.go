package generator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Chat completion requests by outcome",
		},
		[]string{"status"},
	)

	llmRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Chat completion round-trip time",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
	)
)

func recordRequest(status string, duration time.Duration) {
	llmRequests.WithLabelValues(status).Inc()
	llmRequestDuration.Observe(duration.Seconds())
}
