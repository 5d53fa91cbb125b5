package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blueprint"

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Generation metrics
	GenerationCalls    *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	GenerationErrors   *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec

	// View metrics
	ViewsActive prometheus.Gauge
	ViewsOpened prometheus.Counter
	ViewFetches *prometheus.CounterVec

	// Content metrics
	BlocksParsed       *prometheus.CounterVec
	DashboardsComputed prometheus.Counter
	CatalogIdeas       prometheus.Gauge

	// Component timing
	OperationDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests    int64   `json:"total_requests"`
	TotalErrors      int64   `json:"total_errors"`
	ActiveViews      int64   `json:"active_views"`
	Generations      int64   `json:"generations"`
	GenerationErrors int64   `json:"generation_errors"`
	TotalDuration    float64 `json:"total_duration_seconds"` // sum of all request durations
	RequestCount     int64   `json:"request_count"`          // count for averaging
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector on its own registry, so several
// collectors can coexist in one process.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_size_bytes",
				Help:      "HTTP request size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Generation metrics
		GenerationCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_calls_total",
				Help:      "Total number of text-generation calls",
			},
			[]string{"status"},
		),
		GenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Text-generation call duration in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
		GenerationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_errors_total",
				Help:      "Total number of failed text-generation calls by kind",
			},
			[]string{"kind"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_cache_lookups_total",
				Help:      "Generation cache lookups by result",
			},
			[]string{"result"},
		),

		// View metrics
		ViewsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "views_active",
				Help:      "Number of open blueprint views",
			},
		),
		ViewsOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "views_opened_total",
				Help:      "Total number of blueprint views opened",
			},
		),
		ViewFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "view_fetches_total",
				Help:      "Completed view fetches by outcome",
			},
			[]string{"outcome"},
		),

		// Content metrics
		BlocksParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_parsed_total",
				Help:      "Content blocks produced by the parser, by kind",
			},
			[]string{"kind"},
		),
		DashboardsComputed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dashboards_computed_total",
				Help:      "Total number of dashboard computations",
			},
		),
		CatalogIdeas: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_ideas",
				Help:      "Number of ideas in the catalog",
			},
		),

		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Component operation duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"component", "operation", "status"},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ws_connections",
				Help:      "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ws_messages_total",
				Help:      "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordGeneration records a finished text-generation call. An empty kind
// means success.
func (m *Metrics) RecordGeneration(duration time.Duration, errKind string) {
	m.GenerationDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Generations++
	if errKind != "" {
		m.snapshot.GenerationErrors++
	}
	m.mu.Unlock()

	if errKind == "" {
		m.GenerationCalls.WithLabelValues("success").Inc()
		return
	}
	m.GenerationCalls.WithLabelValues("error").Inc()
	m.GenerationErrors.WithLabelValues(errKind).Inc()
}

// RecordCacheLookup records a generation cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// SetViewsActive sets the number of open views
func (m *Metrics) SetViewsActive(count int) {
	m.ViewsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveViews = int64(count)
	m.mu.Unlock()
}

// IncViewsOpened increments the opened views counter
func (m *Metrics) IncViewsOpened() {
	m.ViewsOpened.Inc()
}

// RecordViewFetch records how a view fetch ended ("ready", "failed", "cancelled").
func (m *Metrics) RecordViewFetch(outcome string) {
	m.ViewFetches.WithLabelValues(outcome).Inc()
}

// RecordBlocks adds parsed block counts by kind.
func (m *Metrics) RecordBlocks(counts map[string]int) {
	for kind, n := range counts {
		m.BlocksParsed.WithLabelValues(kind).Add(float64(n))
	}
}

// IncDashboards increments the dashboard computation counter
func (m *Metrics) IncDashboards() {
	m.DashboardsComputed.Inc()
}

// SetCatalogIdeas sets the number of ideas in the catalog
func (m *Metrics) SetCatalogIdeas(count int) {
	m.CatalogIdeas.Set(float64(count))
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// Snapshot returns the current values tracked for the JSON API.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
