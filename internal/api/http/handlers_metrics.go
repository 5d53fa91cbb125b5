package http

import (
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper. A nil collector records nothing.
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackCatalogOperation times a catalog operation; call the result with the outcome.
func (hm *HandlerMetrics) TrackCatalogOperation(operation string) func(status string) {
	return hm.track("catalog", operation)
}

// TrackViewOperation times a view manager operation.
func (hm *HandlerMetrics) TrackViewOperation(operation string) func(status string) {
	return hm.track("view_manager", operation)
}

// TrackRenderOperation times a parse or render operation.
func (hm *HandlerMetrics) TrackRenderOperation(operation string) func(status string) {
	return hm.track("renderer", operation)
}

func (hm *HandlerMetrics) track(component, operation string) func(status string) {
	timer := monitoring.NewTimer(hm.metrics, component, operation)
	return func(status string) {
		timer.Stop(status)
	}
}

// dashboardComputed counts a dashboard computation.
func (hm *HandlerMetrics) dashboardComputed() {
	if hm.metrics != nil {
		hm.metrics.IncDashboards()
	}
}

// blocksParsed counts parsed blocks per kind.
func (hm *HandlerMetrics) blocksParsed(counts map[string]int) {
	if hm.metrics != nil {
		hm.metrics.RecordBlocks(counts)
	}
}
