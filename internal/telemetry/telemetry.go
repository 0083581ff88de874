package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics carries the process counters exposed on the ops /metrics endpoint.
type Metrics struct {
	MentionsHandled prometheus.Counter
	Completions     prometheus.Counter
	Searches        *prometheus.CounterVec
	ChunksDelivered prometheus.Counter
}

// NewMetrics registers all bot metrics against the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MentionsHandled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "yapper",
			Name:      "mentions_handled_total",
			Help:      "Mention messages that entered the response pipeline.",
		}),
		Completions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "yapper",
			Name:      "completions_total",
			Help:      "Requests issued to the completion endpoint.",
		}),
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yapper",
			Name:      "searches_total",
			Help:      "Search commands by outcome.",
		}, []string{"outcome"}),
		ChunksDelivered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "yapper",
			Name:      "chunks_delivered_total",
			Help:      "Outbound reply chunks sent to the platform.",
		}),
	}
}
