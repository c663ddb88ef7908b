// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_search_requests_total",
			Help: "Total number of program search requests served",
		},
		[]string{"backend"},
	)

	SearchRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_search_requests_failed_total",
			Help: "Total number of program search requests that failed",
		},
		[]string{"backend", "error_code"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "finder_search_duration_seconds",
			Help: "Duration of program search handling in seconds",
		},
		[]string{"backend"},
	)

	ResponseCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_response_cache_hits_total",
			Help: "Search/more-info responses served from the response cache",
		},
		[]string{"endpoint"},
	)

	ResponseCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_response_cache_misses_total",
			Help: "Search/more-info responses recomputed on a cache miss",
		},
		[]string{"endpoint"},
	)

	ResultRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finder_result_rows_skipped_total",
			Help: "Result rows dropped because the source document was incomplete",
		},
	)

	RegisterRedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finder_register_redirects_total",
			Help: "Register redirects issued",
		},
	)
)
