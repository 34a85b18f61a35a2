// Package metrics provides Prometheus metrics for the fitfuzz service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for evaluations.
const (
	OutcomeOK       = "ok"
	OutcomeNoResult = "no_recommendation"
	OutcomeInvalid  = "invalid"
)

var strengthBuckets = []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Inference
	evaluations       *prometheus.CounterVec
	evaluationLatency prometheus.Histogram
	ruleStrength      *prometheus.HistogramVec
	rulesFired        prometheus.Histogram
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	plotRenders       *prometheus.CounterVec

	// Activity log
	activityDropped        prometheus.Counter
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueued          prometheus.Counter
	queueDequeued          prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram
	workerCount            prometheus.Gauge
	workerActive           prometheus.Gauge
	workerLatency          prometheus.Histogram
	workerErrors           prometheus.Counter
	storeRecords           prometheus.Gauge
	storeAppendLatency     prometheus.Histogram
	storeQueryLatency      prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByComponent   *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec
	errorsByEndpoint    *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record*/Update* helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fitfuzz",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(auto promauto.Factory, name, help string) prometheus.Counter {
	return auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(auto promauto.Factory, name, help string) prometheus.Gauge {
	return auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(auto promauto.Factory, name, help string, buckets []float64) prometheus.Histogram {
	return auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) counterVec(auto promauto.Factory, name, help string, labels ...string) *prometheus.CounterVec {
	return auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(auto promauto.Factory, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	}, labels)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	b := m.histogramBuckets

	m.evaluations = m.counterVec(auto, "evaluations_total", "Fuzzy evaluations by outcome", "outcome")
	m.evaluationLatency = m.histogram(auto, "evaluation_latency_milliseconds", "Inference latency in milliseconds", b)
	m.ruleStrength = m.histogramVec(auto, "rule_strength", "Firing strength of rules that fired, by consequent term", strengthBuckets, "consequent")
	m.rulesFired = m.histogram(auto, "rules_fired", "Number of rules with non-zero strength per evaluation", []float64{0, 1, 2, 3, 4, 5, 6, 9})
	m.cacheHits = m.counter(auto, "cache_hits_total", "Recommendation cache hits")
	m.cacheMisses = m.counter(auto, "cache_misses_total", "Recommendation cache misses")
	m.plotRenders = m.counterVec(auto, "plot_renders_total", "Membership plots rendered by variable", "variable")

	m.activityDropped = m.counter(auto, "activity_dropped_total", "Activity entries dropped on a full queue")
	m.queueSize = m.gauge(auto, "queue_size", "Current activity queue length")
	m.queueCapacity = m.gauge(auto, "queue_capacity", "Activity queue capacity")
	m.queueUtilization = m.gauge(auto, "queue_utilization_ratio", "Queue length divided by capacity")
	m.queueEnqueued = m.counter(auto, "queue_enqueue_total", "Activity entries enqueued")
	m.queueDequeued = m.counter(auto, "queue_dequeue_total", "Activity entries dequeued")
	m.queueEnqueueErrors = m.counter(auto, "queue_enqueue_errors_total", "Rejected enqueue attempts")
	m.queueProcessingLatency = m.histogram(auto, "queue_processing_latency_milliseconds", "Time from enqueue to dequeue in milliseconds", b)
	m.workerCount = m.gauge(auto, "worker_count", "Configured activity workers")
	m.workerActive = m.gauge(auto, "worker_active_count", "Workers currently writing an entry")
	m.workerLatency = m.histogram(auto, "worker_processing_latency_milliseconds", "Per-entry worker latency in milliseconds", b)
	m.workerErrors = m.counter(auto, "worker_errors_total", "Entries the workers failed to persist")
	m.storeRecords = m.gauge(auto, "store_records", "Activity entries held by the store")
	m.storeAppendLatency = m.histogram(auto, "store_append_latency_milliseconds", "Store append latency in milliseconds", b)
	m.storeQueryLatency = m.histogram(auto, "store_query_latency_milliseconds", "Store query latency in milliseconds", b)

	m.httpRequests = m.counterVec(auto, "http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec(auto, "http_request_duration_milliseconds", "HTTP request duration in milliseconds", b, "endpoint", "method", "status_code")
	m.errorsByComponent = m.counterVec(auto, "errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorsByType = m.counterVec(auto, "errors_by_type_total", "Errors by type", "error_type", "severity")
	m.errorsByEndpoint = m.counterVec(auto, "errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec(auto, "error_latency_milliseconds", "Latency of operations that resulted in errors", b, "component", "error_type")

	m.systemMemoryUsage = m.gauge(auto, "system_memory_usage_bytes", "Heap memory in use in bytes")
	m.systemGoroutineCount = m.gauge(auto, "system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram(auto, "system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordEvaluation counts one evaluation with the given outcome and latency.
func RecordEvaluation(outcome string, latencyMs float64) {
	globalManager.evaluations.WithLabelValues(outcome).Inc()
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordRuleStrength observes the strength of a rule that fired.
func RecordRuleStrength(consequent string, strength float64) {
	globalManager.ruleStrength.WithLabelValues(consequent).Observe(strength)
}

// RecordRulesFired observes how many rules fired in one evaluation.
func RecordRulesFired(n int) {
	globalManager.rulesFired.Observe(float64(n))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordPlotRender counts a rendered membership plot.
func RecordPlotRender(variable string) {
	globalManager.plotRenders.WithLabelValues(variable).Inc()
}

// RecordActivityDropped counts an activity entry lost to backpressure.
func RecordActivityDropped() { globalManager.activityDropped.Inc() }

// UpdateQueueSize sets the current queue length.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) { globalManager.queueUtilization.Set(utilization) }

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// RecordQueueProcessingLatency records time spent waiting in the queue.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) { globalManager.workerActive.Set(float64(count)) }

// RecordWorkerProcessingLatency records per-entry worker latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// UpdateStoreRecords sets the number of persisted activity entries.
func UpdateStoreRecords(count int) { globalManager.storeRecords.Set(float64(count)) }

// RecordStoreAppendLatency records store append latency.
func RecordStoreAppendLatency(latencyMs float64) { globalManager.storeAppendLatency.Observe(latencyMs) }

// RecordStoreQueryLatency records store query latency.
func RecordStoreQueryLatency(latencyMs float64) { globalManager.storeQueryLatency.Observe(latencyMs) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that failed.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler serves the custom registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
