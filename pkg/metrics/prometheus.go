// Package metrics provides Prometheus metrics for the scorecard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exposed by the scorecard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	sizeBuckets      []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Form metrics
	formRenders    *prometheus.CounterVec
	employeesAdded *prometheus.CounterVec

	// Export metrics
	exports        *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	exportBytes    *prometheus.HistogramVec

	// Session metrics
	sessionsCreated prometheus.Counter
	sessionsActive  prometheus.Gauge
	sessionsExpired prometheus.Counter
	sessionsEvicted prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scorecard",
		subsystem:        "forms",
		histogramBuckets: prometheus.DefBuckets,
		sizeBuckets:      prometheus.ExponentialBuckets(256, 4, 8),
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.formRenders = m.counterVec("form_renders_total",
		"Total number of form page renders by variant", "variant")
	m.employeesAdded = m.counterVec("employees_added_total",
		"Total number of employee names added to sessions by variant", "variant")

	m.exports = m.counterVec("exports_total",
		"Total number of export attempts by variant, format and result", "variant", "format", "result")
	m.exportDuration = m.histogramVec("export_duration_milliseconds",
		"Time spent producing an export artifact in milliseconds", m.histogramBuckets, "format")
	m.exportBytes = m.histogramVec("export_size_bytes",
		"Size of produced export artifacts in bytes", m.sizeBuckets, "format")

	m.sessionsCreated = m.counter("sessions_created_total", "Total number of sessions created")
	m.sessionsActive = m.gauge("sessions_active", "Number of live sessions held in memory")
	m.sessionsExpired = m.counter("sessions_expired_total", "Total number of sessions removed after the idle TTL")
	m.sessionsEvicted = m.counter("sessions_evicted_total", "Total number of sessions evicted because the store was full")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets, "endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total",
		"Total number of errors by type", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// RecordFormRender counts one form page render.
func RecordFormRender(variant string) {
	globalManager.formRenders.WithLabelValues(variant).Inc()
}

// RecordEmployeeAdded counts one name appended to a session.
func RecordEmployeeAdded(variant string) {
	globalManager.employeesAdded.WithLabelValues(variant).Inc()
}

// RecordExport counts an export attempt and observes its duration.
// result is "ok" or "error".
func RecordExport(variant, format, result string, durationMs float64) {
	globalManager.exports.WithLabelValues(variant, format, result).Inc()
	globalManager.exportDuration.WithLabelValues(format).Observe(durationMs)
}

// RecordExportBytes observes the size of a produced artifact.
func RecordExportBytes(format string, n int) {
	globalManager.exportBytes.WithLabelValues(format).Observe(float64(n))
}

// RecordSessionCreated increments the session creation counter.
func RecordSessionCreated() {
	globalManager.sessionsCreated.Inc()
}

// UpdateActiveSessions sets the number of live sessions.
func UpdateActiveSessions(n int) {
	globalManager.sessionsActive.Set(float64(n))
}

// RecordSessionsExpired adds n sessions dropped by the sweeper.
func RecordSessionsExpired(n int) {
	if n > 0 {
		globalManager.sessionsExpired.Add(float64(n))
	}
}

// RecordSessionEvicted increments the LRU eviction counter.
func RecordSessionEvicted() {
	globalManager.sessionsEvicted.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
