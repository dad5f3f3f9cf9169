package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Directory client Prometheus metrics.
var (
	DirectoryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewdex",
			Name:      "directory_requests_total",
			Help:      "Total number of brewery directory requests",
		},
		[]string{"operation", "status"},
	)

	DirectoryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brewdex",
			Name:      "directory_request_duration_seconds",
			Help:      "Brewery directory request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	DirectoryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewdex",
			Name:      "directory_errors_total",
			Help:      "Total brewery directory errors",
		},
		[]string{"operation", "error_type"},
	)

	DirectoryRecordsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brewdex",
			Name:      "directory_records_returned",
			Help:      "Number of records returned per directory search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
		[]string{"operation"},
	)

	StaleResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brewdex",
			Name:      "stale_search_responses_total",
			Help:      "Search responses dropped because a newer search was issued",
		},
	)
)

var registerDirectoryOnce sync.Once

// RegisterDirectoryMetrics registers Prometheus directory metrics. Called from main;
// repeated calls are no-ops.
func RegisterDirectoryMetrics() {
	registerDirectoryOnce.Do(func() {
		prometheus.MustRegister(DirectoryRequestsTotal)
		prometheus.MustRegister(DirectoryRequestDuration)
		prometheus.MustRegister(DirectoryErrorsTotal)
		prometheus.MustRegister(DirectoryRecordsReturned)
		prometheus.MustRegister(StaleResponsesTotal)
	})
}
