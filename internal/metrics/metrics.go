// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private Prometheus registry and the portal's collectors.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	ViewRuns         *prometheus.CounterVec
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
}

// New creates a Registry with every collector registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocation_lab_http_requests_total",
				Help: "HTTP requests served by the portal",
			},
			[]string{"method", "code"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "allocation_lab_http_request_duration_seconds",
				Help:    "Portal request latency in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method"},
		),

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocation_lab_upstream_requests_total",
				Help: "Requests sent to the optimizer by endpoint and status code",
			},
			[]string{"endpoint", "code"},
		),

		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "allocation_lab_upstream_request_duration_seconds",
				Help:    "Optimizer round-trip latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		ViewRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocation_lab_view_runs_total",
				Help: "View request completions by view and outcome",
			},
			[]string{"view", "outcome"},
		),

		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocation_lab_cache_hits_total",
				Help: "Cache hits by cache name",
			},
			[]string{"cache"},
		),

		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocation_lab_cache_misses_total",
				Help: "Cache misses by cache name",
			},
			[]string{"cache"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequests,
		r.HTTPDuration,
		r.UpstreamRequests,
		r.UpstreamDuration,
		r.ViewRuns,
		r.CacheHits,
		r.CacheMisses,
	)
	return r
}

// Handler returns the exposition handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveRequest records one optimizer call. Status 0 means unreachable.
func (r *Registry) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	r.UpstreamRequests.WithLabelValues(endpoint, code).Inc()
	r.UpstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTP records one portal request.
func (r *Registry) ObserveHTTP(method string, status int, elapsed time.Duration) {
	r.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordViewRun records a view request outcome ("success", "failure", "stale").
func (r *Registry) RecordViewRun(view, outcome string) {
	r.ViewRuns.WithLabelValues(view, outcome).Inc()
}

// RecordCacheHit records a cache hit.
func (r *Registry) RecordCacheHit(cache string) {
	r.CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func (r *Registry) RecordCacheMiss(cache string) {
	r.CacheMisses.WithLabelValues(cache).Inc()
}
