package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gearcheck_http_requests_total",
			Help: "Total HTTP requests processed, by method, path, and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gearcheck_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Analysis metrics
var (
	AnalysesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gearcheck_analyses_total",
			Help: "Total orphan analyses performed",
		},
	)

	ReferencesExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gearcheck_references_extracted_total",
			Help: "Total distinct script references extracted across analyses",
		},
	)

	EntriesCompared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gearcheck_inventory_entries_compared_total",
			Help: "Total inventory entries compared across analyses",
		},
	)

	OrphansFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gearcheck_orphans_found_total",
			Help: "Total orphaned items found across analyses",
		},
	)
)
