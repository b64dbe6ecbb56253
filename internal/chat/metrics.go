package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Chat replies by detected category and reply source",
		},
		[]string{"category", "source"},
	)

	chatFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_llm_fallbacks_total",
			Help: "Model failures answered with a canned reply",
		},
	)
)

func RecordReply(category Category, source Source) {
	chatMessages.WithLabelValues(string(category), string(source)).Inc()
}

func RecordFallback() {
	chatFallbacks.Inc()
}
