package quest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	questsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quests_started_total",
			Help: "Total number of quests started",
		},
	)

	missionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quest_missions_completed_total",
			Help: "Mission completions by photo storage outcome",
		},
		[]string{"status"},
	)

	questsFinished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quests_finished_total",
			Help: "Total number of quests with every mission completed",
		},
	)
)

func RecordQuestStarted() {
	questsStarted.Inc()
}

func RecordMissionCompleted(status string) {
	missionsCompleted.WithLabelValues(status).Inc()
}

func RecordQuestFinished() {
	questsFinished.Inc()
}
