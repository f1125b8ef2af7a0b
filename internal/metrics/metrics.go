// Package metrics exposes Prometheus metrics for the HTTP server and the
// search pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "photos"

// Search outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeBadRequest = "bad_request"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

// Metrics holds all Prometheus metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	searchesTotal  *prometheus.CounterVec
	searchResults  prometheus.Histogram
	searchGroups   prometheus.Histogram
	filtersDropped *prometheus.CounterVec
	badValues      *prometheus.CounterVec
}

// New creates and registers all metrics, including the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_inflight_requests",
				Help:      "Number of HTTP requests currently being served",
			},
		),

		searchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of searches by outcome",
			},
			[]string{"outcome"},
		),
		searchResults: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of photos matched per search",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		searchGroups: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_groups",
				Help:      "Number of time groups per search, zero when ungrouped",
				Buckets:   prometheus.LinearBuckets(0, 3, 6),
			},
		),
		filtersDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_filters_dropped_total",
				Help:      "Facet filters ignored because their slug was unknown",
			},
			[]string{"kind"},
		),
		badValues: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_bad_values_total",
				Help:      "Search parameters ignored because of an unusable value",
			},
			[]string{"key"},
		),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latencies. Routes are labeled with
// their chi pattern to keep cardinality low.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveSearch records a finished search.
func (m *Metrics) ObserveSearch(outcome string, results, groups int) {
	m.searchesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.searchResults.Observe(float64(results))
		m.searchGroups.Observe(float64(groups))
	}
}

// FilterDropped counts an unresolvable facet filter.
func (m *Metrics) FilterDropped(kind gallery.Kind, _ string, _ error) {
	m.filtersDropped.WithLabelValues(kind.String()).Inc()
}

// BadValue counts an unusable parameter value.
func (m *Metrics) BadValue(key, _ string) {
	m.badValues.WithLabelValues(key).Inc()
}
