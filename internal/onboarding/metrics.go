package onboarding

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	onboardingCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_completed_total",
			Help: "Onboarding completions by chosen date type",
		},
		[]string{"date_type"},
	)

	onboardingLikedTags = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "onboarding_liked_tags",
			Help:    "Number of liked tags at onboarding completion",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		},
	)
)

// RecordCompletion records a finished onboarding
func RecordCompletion(p *Profile) {
	dateType := string(p.DateType)
	if dateType == "" {
		dateType = "unset"
	}
	onboardingCompleted.WithLabelValues(dateType).Inc()
	onboardingLikedTags.Observe(float64(len(p.LikedTags)))
}
