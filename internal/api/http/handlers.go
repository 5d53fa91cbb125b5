package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/venture-blueprint/internal/presentation/html"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/id"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeneratorStatus reports on the text-generation backend for health checks.
type GeneratorStatus interface {
	Model() string
	BreakerState() resilience.State
}

// Handlers contains all HTTP handlers
type Handlers struct {
	catalog   *catalog.Catalog
	views     *view.Manager
	renderer  *html.Renderer
	generator GeneratorStatus
	metrics   *HandlerMetrics
	logger    *zap.Logger
}

// NewHandlers creates a new handler set. generator may be nil.
func NewHandlers(
	cat *catalog.Catalog,
	views *view.Manager,
	renderer *html.Renderer,
	generator GeneratorStatus,
	metrics *HandlerMetrics,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		catalog:   cat,
		views:     views,
		renderer:  renderer,
		generator: generator,
		metrics:   metrics,
		logger:    logger.Named("http"),
	}
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Text *string `json:"text" binding:"required"`
}

// OpenViewRequest is the body of POST /views.
type OpenViewRequest struct {
	IdeaID string `json:"idea_id" binding:"required"`
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Venture Blueprint Service (Go)",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	generator := gin.H{"configured": h.generator != nil}
	if h.generator != nil {
		generator["model"] = h.generator.Model()
		generator["breaker"] = h.generator.BreakerState().String()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"catalog":   gin.H{"ideas": h.catalog.Len(), "categories": h.catalog.Categories()},
		"views":     h.views.Stats(),
		"generator": generator,
	})
}

// ListIdeas lists catalog ideas, optionally by category
func (h *Handlers) ListIdeas(c *gin.Context) {
	done := h.metrics.TrackCatalogOperation("list")

	category := c.Query("category")
	if err := utils.ValidateCategory(category, false); err != nil {
		done("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ideas := h.catalog.List(category)
	done("success")

	c.JSON(http.StatusOK, gin.H{
		"ideas":      ideas,
		"categories": h.catalog.Categories(),
	})
}

// GetIdea returns one idea
func (h *Handlers) GetIdea(c *gin.Context) {
	idea, ok := h.lookupIdea(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, idea)
}

// IdeaDashboard returns the recomputed numeric panel of an idea
func (h *Handlers) IdeaDashboard(c *gin.Context) {
	idea, ok := h.lookupIdea(c)
	if !ok {
		return
	}

	dash := venture.Compute(idea.ID)
	h.metrics.dashboardComputed()

	c.JSON(http.StatusOK, dashboardResponse(idea, dash))
}

func (h *Handlers) lookupIdea(c *gin.Context) (catalog.Idea, bool) {
	ideaID := c.Param("id")
	if err := utils.ValidateID(ideaID, "idea_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return catalog.Idea{}, false
	}

	idea, err := h.catalog.Get(ideaID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return catalog.Idea{}, false
	}
	return idea, true
}

func dashboardResponse(idea catalog.Idea, dash venture.Dashboard) gin.H {
	return gin.H{
		"idea":      idea,
		"dashboard": dash,
		"points":    dash.Trend.Points(),
	}
}

// Parse classifies submitted text into content blocks
func (h *Handlers) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateText(*req.Text); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done := h.metrics.TrackRenderOperation("parse")
	blocks := blueprint.Parse(*req.Text)
	tally := blueprint.Tally(blocks)
	done("success")

	counts := make(map[string]int, len(tally))
	for kind, n := range tally {
		counts[string(kind)] = n
	}
	h.metrics.blocksParsed(counts)

	c.JSON(http.StatusOK, gin.H{
		"blocks":  blocks,
		"outline": blueprint.Outline(blocks),
		"counts":  counts,
	})
}

// OpenView opens a blueprint view and starts its content fetch
func (h *Handlers) OpenView(c *gin.Context) {
	var req OpenViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateID(req.IdeaID, "idea_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done := h.metrics.TrackViewOperation("open")
	v, err := h.views.Open(req.IdeaID)
	if err != nil {
		done("error")
		h.writeError(c, err)
		return
	}
	done("success")

	c.JSON(http.StatusCreated, gin.H{
		"view":      v,
		"dashboard": v.Dashboard(),
	})
}

// ListViews lists open views, optionally by state
func (h *Handlers) ListViews(c *gin.Context) {
	var filter *view.State
	if s := c.Query("state"); s != "" {
		state := view.State(s)
		switch state {
		case view.StateLoading, view.StateReady, view.StateFailed:
			filter = &state
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "state must be one of loading, ready, failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"views": h.views.List(filter),
		"stats": h.views.Stats(),
	})
}

// GetView returns a view with its recomputed dashboard
func (h *Handlers) GetView(c *gin.Context) {
	viewID, ok := viewParam(c)
	if !ok {
		return
	}

	v, err := h.views.Get(viewID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	dash, err := h.views.Dashboard(viewID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":      v,
		"dashboard": dash,
		"outline":   v.Outline(),
	})
}

// RetryView discards a view's content and fetches it again
func (h *Handlers) RetryView(c *gin.Context) {
	viewID, ok := viewParam(c)
	if !ok {
		return
	}

	done := h.metrics.TrackViewOperation("retry")
	v, err := h.views.Retry(viewID)
	if err != nil {
		done("error")
		h.writeError(c, err)
		return
	}
	done("success")

	c.JSON(http.StatusAccepted, gin.H{"view": v})
}

// CloseView closes a view and cancels its fetch
func (h *Handlers) CloseView(c *gin.Context) {
	viewID, ok := viewParam(c)
	if !ok {
		return
	}

	if err := h.views.Close(viewID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"view_id": viewID,
	})
}

// ViewHTML renders a view as a standalone HTML page
func (h *Handlers) ViewHTML(c *gin.Context) {
	viewID, ok := viewParam(c)
	if !ok {
		return
	}

	v, err := h.views.Get(viewID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	done := h.metrics.TrackRenderOperation("html")
	var buf bytes.Buffer
	if err := h.renderer.RenderView(&buf, v, v.Dashboard()); err != nil {
		done("error")
		h.logger.Error("Failed to render view", zap.String("view_id", viewID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render view"})
		return
	}
	done("success")
	h.metrics.dashboardComputed()

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func viewParam(c *gin.Context) (id.ViewID, bool) {
	raw := c.Param("id")
	if err := utils.ValidateID(raw, "view_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return id.ViewID(raw), true
}

// writeError maps domain errors to status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, view.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, view.ErrFetchInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Register mounts the REST routes on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Catalog
	r.GET("/ideas", h.ListIdeas)
	r.GET("/ideas/:id", h.GetIdea)
	r.GET("/ideas/:id/dashboard", h.IdeaDashboard)

	// Content parsing
	r.POST("/parse", h.Parse)

	// Views
	r.POST("/views", h.OpenView)
	r.GET("/views", h.ListViews)
	r.GET("/views/:id", h.GetView)
	r.POST("/views/:id/retry", h.RetryView)
	r.DELETE("/views/:id", h.CloseView)
	r.GET("/views/:id/html", h.ViewHTML)
}
