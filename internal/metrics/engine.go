package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Engine search Prometheus metrics.
var (
	EngineSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawdex",
			Name:      "engine_search_duration_seconds",
			Help:      "Search engine query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"index", "status"},
	)

	EngineSearchRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawdex",
			Name:      "engine_search_retries_total",
			Help:      "Total bounded retries against the search engine",
		},
		[]string{"index"},
	)

	IndexedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawdex",
			Name:      "indexed_documents_total",
			Help:      "Documents pushed to the search engine by the indexing workflow",
		},
		[]string{"index"},
	)
)

// RegisterEngineMetrics registers the engine collectors explicitly (no init()).
func RegisterEngineMetrics() {
	prometheus.MustRegister(EngineSearchDuration)
	prometheus.MustRegister(EngineSearchRetriesTotal)
	prometheus.MustRegister(IndexedDocumentsTotal)
}

// ObserveEngineSearch records one engine call outcome.
func ObserveEngineSearch(index string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EngineSearchDuration.WithLabelValues(index, status).Observe(d.Seconds())
}
