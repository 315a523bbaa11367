package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	DeckBuilds       prometheus.Counter
	DeckBuildLatency prometheus.Histogram
	UnresolvedRefs   prometheus.Counter
	DeckCacheLookups *prometheus.CounterVec
}

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	return &Metrics{
		DeckBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "studiodeck_deck_builds_total",
			Help: "Total number of presentation decks flattened",
		}),

		DeckBuildLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "studiodeck_deck_build_duration_seconds",
			Help:    "Deck flattening latency in seconds, including project fetches",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),

		UnresolvedRefs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "studiodeck_unresolved_project_refs_total",
			Help: "Total number of dangling project references skipped during flattening",
		}),

		DeckCacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "studiodeck_deck_cache_lookups_total",
			Help: "Deck cache lookups by result",
		}, []string{"result"}), // "hit" or "miss"
	}
}
