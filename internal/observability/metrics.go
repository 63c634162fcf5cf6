package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	solutionChecksTotal   *prometheus.CounterVec
	solutionCheckFiles    prometheus.Histogram
	cmsCacheRequestsTotal *prometheus.CounterVec
	eventsPublishedTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		solutionChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solution_checks_total",
			Help: "Total number of lesson solution checks by outcome and origin.",
		}, []string{"result", "origin"})

		solutionCheckFiles = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solution_check_incorrect_files",
			Help:    "Number of incorrect files reported per solution check.",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		})

		cmsCacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_cache_requests_total",
			Help: "Content cache lookups by operation and result.",
		}, []string{"operation", "result"})

		eventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Domain events published by subject and outcome.",
		}, []string{"subject", "status"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			solutionChecksTotal,
			solutionCheckFiles,
			cmsCacheRequestsTotal,
			eventsPublishedTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// SolutionChecks exposes the counter for solution checks.
func SolutionChecks() *prometheus.CounterVec {
	RegisterMetrics()
	return solutionChecksTotal
}

// SolutionCheckIncorrectFiles exposes the histogram of incorrect files per check.
func SolutionCheckIncorrectFiles() prometheus.Histogram {
	RegisterMetrics()
	return solutionCheckFiles
}

// CMSCacheRequests exposes the counter for content cache lookups.
func CMSCacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return cmsCacheRequestsTotal
}

// EventsPublished exposes the counter for published domain events.
func EventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsPublishedTotal
}
