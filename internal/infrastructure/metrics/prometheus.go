// Package metrics exports pipeline metrics in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pricelens/backend/internal/domain"
)

const namespace = "pricelens"

// PrometheusMetrics implements domain.PipelineMetrics.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	stageLatency   *prometheus.HistogramVec
	fallbacks      *prometheus.CounterVec
	searchCache    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64

	// RuntimeCollectors adds the Go runtime and process collectors.
	RuntimeCollectors bool
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets:    []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		RuntimeCollectors: true,
	}
}

// NewPrometheusMetrics creates and registers the pipeline collectors.
func NewPrometheusMetrics(cfg Config) *PrometheusMetrics {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &PrometheusMetrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_requests_total",
			Help:      "Resolved agent requests by intent and outcome.",
		}, []string{"intent", "matched", "online"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_request_duration_seconds",
			Help:      "End-to-end agent request latency.",
			Buckets:   cfg.LatencyBuckets,
		}, []string{"intent"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_stage_duration_seconds",
			Help:      "Latency of each pipeline state.",
			Buckets:   cfg.LatencyBuckets,
		}, []string{"stage"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_fallbacks_total",
			Help:      "Deterministic fallbacks taken, by stage.",
		}, []string{"stage"}),
		searchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_lookups_total",
			Help:      "Online search cache lookups by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   cfg.LatencyBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		m.requests,
		m.requestLatency,
		m.stageLatency,
		m.fallbacks,
		m.searchCache,
		m.httpRequests,
		m.httpLatency,
	)
	if cfg.RuntimeCollectors {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveRequest records one resolved request.
func (m *PrometheusMetrics) ObserveRequest(intent domain.Intent, matched, online bool, duration time.Duration) {
	m.requests.WithLabelValues(string(intent), strconv.FormatBool(matched), strconv.FormatBool(online)).Inc()
	m.requestLatency.WithLabelValues(string(intent)).Observe(duration.Seconds())
}

// ObserveStage records the latency of one state.
func (m *PrometheusMetrics) ObserveStage(stage string, duration time.Duration) {
	m.stageLatency.WithLabelValues(stage).Observe(duration.Seconds())
}

// IncFallback counts a fallback taken by stage.
func (m *PrometheusMetrics) IncFallback(stage string) {
	m.fallbacks.WithLabelValues(stage).Inc()
}

// IncSearchCache counts a search cache lookup.
func (m *PrometheusMetrics) IncSearchCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.searchCache.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served HTTP request.
func (m *PrometheusMetrics) ObserveHTTP(route, method string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
