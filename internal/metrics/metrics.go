package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	// FetchTotal counts collector fetches by source and outcome.
	FetchTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_collector_fetch_total",
		Help: "Collector fetches by source and status.",
	}, []string{"source", "status"})

	// FetchDuration observes per-collector fetch latency.
	FetchDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulse_collector_fetch_duration_seconds",
		Help:    "Collector fetch duration by source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	// BriefTotal counts pipeline runs by outcome: ok, degraded, empty,
	// unconfigured, panic.
	BriefTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_brief_total",
		Help: "Briefing runs by outcome.",
	}, []string{"outcome"})
)

// Handler serves the pipeline's registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
