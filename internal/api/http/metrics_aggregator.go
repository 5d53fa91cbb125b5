package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
)

// MetricsAggregator serves a JSON digest of the Prometheus collectors and the
// live view and generator state.
type MetricsAggregator struct {
	metrics   *monitoring.Metrics
	views     *view.Manager
	generator GeneratorStatus
}

// NewMetricsAggregator creates a metrics aggregator. generator may be nil.
func NewMetricsAggregator(metrics *monitoring.Metrics, views *view.Manager, generator GeneratorStatus) *MetricsAggregator {
	return &MetricsAggregator{
		metrics:   metrics,
		views:     views,
		generator: generator,
	}
}

// MetricsSnapshot represents a snapshot of all service metrics
type MetricsSnapshot struct {
	Timestamp  time.Time                  `json:"timestamp"`
	Backend    monitoring.MetricsSnapshot `json:"backend"`
	Views      view.Stats                 `json:"views"`
	Generation map[string]interface{}     `json:"generation,omitempty"`
	Summary    MetricsSummary             `json:"summary"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests       int64   `json:"total_requests"`
	AverageLatencyMs    float64 `json:"average_latency_ms"`
	ErrorRate           float64 `json:"error_rate"`
	GenerationErrorRate float64 `json:"generation_error_rate"`
	ActiveViews         int     `json:"active_views"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
}

// GetAggregatedMetrics returns the metrics digest
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	backend := ma.metrics.Snapshot()
	stats := ma.views.Stats()

	snapshot := MetricsSnapshot{
		Timestamp: time.Now(),
		Backend:   backend,
		Views:     stats,
		Summary:   summarize(backend, stats),
	}

	if ma.generator != nil {
		snapshot.Generation = map[string]interface{}{
			"model":   ma.generator.Model(),
			"breaker": ma.generator.BreakerState().String(),
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

// summarize computes high-level summary metrics
func summarize(backend monitoring.MetricsSnapshot, stats view.Stats) MetricsSummary {
	var avgLatency float64
	if backend.RequestCount > 0 {
		avgLatency = (backend.TotalDuration / float64(backend.RequestCount)) * 1000
	}

	var errorRate float64
	if backend.TotalRequests > 0 {
		errorRate = float64(backend.TotalErrors) / float64(backend.TotalRequests)
	}

	var genErrorRate float64
	if backend.Generations > 0 {
		genErrorRate = float64(backend.GenerationErrors) / float64(backend.Generations)
	}

	return MetricsSummary{
		TotalRequests:       backend.TotalRequests,
		AverageLatencyMs:    avgLatency,
		ErrorRate:           errorRate,
		GenerationErrorRate: genErrorRate,
		ActiveViews:         stats.Total,
		UptimeSeconds:       backend.UptimeSeconds,
	}
}
