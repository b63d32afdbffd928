package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts inbound API requests by route, method and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_checker_http_requests_total",
			Help: "Total number of processed HTTP requests.",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration observes inbound request latency by route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_checker_http_request_duration_seconds",
			Help:    "Latency of processed HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// UpstreamRequestDuration observes latency of calls to external
	// collaborators (profile resolution, balance lookup, wallet enrichment).
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_checker_upstream_request_duration_seconds",
			Help:    "Latency of requests to upstream services.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	// UpstreamErrorsTotal counts failed upstream calls.
	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_checker_upstream_errors_total",
			Help: "Total number of failed requests to upstream services.",
		},
		[]string{"service", "operation"},
	)

	// CacheEventsTotal counts hits and misses per in-process cache.
	CacheEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_checker_cache_events_total",
			Help: "Cache hits and misses by cache name.",
		},
		[]string{"cache", "event"},
	)

	// HoldingsFilteredTotal counts holdings discarded by the aggregator,
	// labelled with the matching filter predicate.
	HoldingsFilteredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_checker_holdings_filtered_total",
			Help: "Total number of holdings dropped during aggregation.",
		},
		[]string{"reason"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// It panics on duplicate registration, which indicates a wiring bug.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamRequestDuration,
		UpstreamErrorsTotal,
		CacheEventsTotal,
		HoldingsFilteredTotal,
	)
}
