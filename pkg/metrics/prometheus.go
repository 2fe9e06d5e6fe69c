// Package metrics provides Prometheus metrics for the careerlens service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every Prometheus collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Analytics
	careersNormalized prometheus.Counter
	careersAnalyzed   prometheus.Counter
	analysisErrors    *prometheus.CounterVec
	analysisLatency   prometheus.Histogram
	comparisons       prometheus.Counter
	chartProjections  prometheus.Counter

	// Query cache
	cacheLookups *prometheus.CounterVec
	cacheEntries prometheus.Gauge
	cacheClears  prometheus.Counter
	sharedLoads  prometheus.Counter

	// Upstream providers
	upstreamRequests  *prometheus.CounterVec
	upstreamLatency   *prometheus.HistogramVec
	upstreamFallbacks *prometheus.CounterVec
	upstreamRetries   *prometheus.CounterVec
	breakerState      *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors on the
// configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careerlens",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval reports how often system gauges should be sampled.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.careersNormalized = m.counter("careers_normalized_total", "Total number of actor careers built from raw records")
	m.careersAnalyzed = m.counter("careers_analyzed_total", "Total number of successful career analyses")
	m.analysisErrors = m.counterVec("analysis_errors_total", "Career analyses that failed, by reason", "reason")
	m.analysisLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:        "analysis_latency_milliseconds",
		Help:        "Career analysis latency in milliseconds",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		ConstLabels: m.customLabels,
	})
	m.comparisons = m.counter("comparisons_total", "Total number of actor comparisons")
	m.chartProjections = m.counter("chart_projections_total", "Total number of chart bundles projected")

	m.cacheLookups = m.counterVec("cache_lookups_total", "Query cache lookups by key kind and result", "kind", "result")
	m.cacheEntries = m.gauge("cache_entries", "Current number of query cache entries")
	m.cacheClears = m.counter("cache_clears_total", "Total number of query cache clears")
	m.sharedLoads = m.counter("shared_loads_total", "Career loads served by joining an in-flight identical load")

	m.upstreamRequests = m.counterVec("upstream_requests_total", "Upstream requests by provider and outcome", "upstream", "outcome")
	m.upstreamLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:        "upstream_latency_milliseconds",
		Help:        "Upstream request latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"upstream"})
	m.upstreamFallbacks = m.counterVec("upstream_fallbacks_total", "Calls answered from demo data, by provider and call", "upstream", "call")
	m.upstreamRetries = m.counterVec("upstream_retries_total", "Upstream retry attempts by provider", "upstream")
	m.breakerState = promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:        "circuit_breaker_state",
		Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		ConstLabels: m.customLabels,
	}, []string{"name"})

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.customLabels,
	})
}

// Analytics.

// RecordCareerNormalized increments the normalized careers counter.
func RecordCareerNormalized() {
	if globalManager.enabled {
		globalManager.careersNormalized.Inc()
	}
}

// RecordCareerAnalyzed records a successful analysis and its latency.
func RecordCareerAnalyzed(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.careersAnalyzed.Inc()
	globalManager.analysisLatency.Observe(latencyMs)
}

// RecordAnalysisError counts a failed analysis by reason.
func RecordAnalysisError(reason string) {
	if globalManager.enabled {
		globalManager.analysisErrors.WithLabelValues(reason).Inc()
	}
}

// RecordComparison increments the comparisons counter.
func RecordComparison() {
	if globalManager.enabled {
		globalManager.comparisons.Inc()
	}
}

// RecordChartProjection increments the chart projections counter.
func RecordChartProjection() {
	if globalManager.enabled {
		globalManager.chartProjections.Inc()
	}
}

// Query cache.

// RecordCacheHit counts a cache hit for the given key kind.
func RecordCacheHit(kind string) {
	if globalManager.enabled {
		globalManager.cacheLookups.WithLabelValues(kind, "hit").Inc()
	}
}

// RecordCacheMiss counts a cache miss for the given key kind.
func RecordCacheMiss(kind string) {
	if globalManager.enabled {
		globalManager.cacheLookups.WithLabelValues(kind, "miss").Inc()
	}
}

// UpdateCacheEntries sets the current cache size.
func UpdateCacheEntries(n int) {
	if globalManager.enabled {
		globalManager.cacheEntries.Set(float64(n))
	}
}

// RecordCacheClear increments the cache clear counter.
func RecordCacheClear() {
	if globalManager.enabled {
		globalManager.cacheClears.Inc()
	}
}

// RecordSharedLoad counts a load that piggybacked on an in-flight one.
func RecordSharedLoad() {
	if globalManager.enabled {
		globalManager.sharedLoads.Inc()
	}
}

// Upstream providers.

// RecordUpstreamRequest records one upstream call outcome and its latency.
func RecordUpstreamRequest(upstream, outcome string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.upstreamRequests.WithLabelValues(upstream, outcome).Inc()
	globalManager.upstreamLatency.WithLabelValues(upstream).Observe(latencyMs)
}

// RecordUpstreamFallback counts a call answered from demo data.
func RecordUpstreamFallback(upstream, call string) {
	if globalManager.enabled {
		globalManager.upstreamFallbacks.WithLabelValues(upstream, call).Inc()
	}
}

// RecordUpstreamRetry counts a retry attempt.
func RecordUpstreamRetry(upstream string) {
	if globalManager.enabled {
		globalManager.upstreamRetries.WithLabelValues(upstream).Inc()
	}
}

// UpdateCircuitBreakerState sets the breaker state gauge.
func UpdateCircuitBreakerState(name string, state int) {
	if globalManager.enabled {
		globalManager.breakerState.WithLabelValues(name).Set(float64(state))
	}
}

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. It must run before any metric is recorded or served.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often periodic gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}
