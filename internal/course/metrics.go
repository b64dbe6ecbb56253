package course

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "course_recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
	)

	matchPercents = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "course_match_percent",
			Help:    "Distribution of match percentages of the top recommendation",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_recommend_cache_lookups_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"},
	)

	coursesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_generated_total",
			Help: "Total number of generation attempts",
		},
		[]string{"status"},
	)

	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "course_generation_duration_seconds",
			Help:    "Time spent waiting for the course generator",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		},
	)

	stopsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "course_stops_unlocked_total",
			Help: "Total number of blind stops revealed",
		},
	)
)

func RecordRecommendation(top []*ScoredCourse) {
	recommendationsServed.Inc()
	if len(top) > 0 {
		matchPercents.Observe(float64(top[0].MatchPercent))
	}
}

func recordCacheLookup(hit bool) {
	if hit {
		recommendCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	recommendCacheLookups.WithLabelValues("miss").Inc()
}

func RecordGeneration(status string, duration time.Duration) {
	coursesGenerated.WithLabelValues(status).Inc()
	generationDuration.Observe(duration.Seconds())
}

func RecordUnlock() {
	stopsUnlocked.Inc()
}
