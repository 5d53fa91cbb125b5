package ws

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/id"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/utils"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware already gates browser origins
	},
}

// Message is a client-to-server frame.
type Message struct {
	Type string `json:"type"`
}

// Handler streams view state events over WebSocket connections
type Handler struct {
	views   *view.Manager
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(views *view.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		views:   views,
		metrics: metrics,
		logger:  logger.Named("ws"),
	}
}

// conn serializes writes; gorilla allows one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(data)
}

// HandleView streams the state events of one view. The first frame is the
// view's current state; the stream ends with a "closed" frame when the view
// is closed.
func (h *Handler) HandleView(c *gin.Context) {
	raw := c.Param("id")
	if err := utils.ValidateID(raw, "view_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	viewID := id.ViewID(raw)

	// Subscribe before upgrading so an unknown view is a plain 404
	events, unsubscribe, err := h.views.Subscribe(viewID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, view.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	defer unsubscribe()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	cn := &conn{ws: ws}
	log := h.logger.With(zap.String("view_id", viewID.String()))
	log.Debug("Stream opened")

	h.write(cn, "system", map[string]interface{}{
		"type":    "system",
		"message": "Connected to Venture Blueprint stream",
		"view_id": viewID,
	})

	done := make(chan struct{})
	go h.readLoop(cn, viewID, done, log)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				h.write(cn, "closed", map[string]interface{}{
					"type":      "closed",
					"view_id":   viewID,
					"timestamp": time.Now().Unix(),
				})
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "view closed"),
					time.Now().Add(writeWait))
				log.Debug("Stream ended, view closed")
				return
			}
			if err := h.write(cn, "state", map[string]interface{}{
				"type":  "state",
				"event": ev,
			}); err != nil {
				log.Debug("Stream write failed", zap.Error(err))
				return
			}
		case <-done:
			log.Debug("Stream closed by client")
			return
		}
	}
}

// readLoop handles client frames until the connection drops.
func (h *Handler) readLoop(cn *conn, viewID id.ViewID, done chan<- struct{}, log *zap.Logger) {
	defer close(done)

	for {
		var msg Message
		if err := cn.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		switch msg.Type {
		case "ping":
			h.recordIn(msg.Type)
			h.write(cn, "pong", map[string]interface{}{"type": "pong"})
		case "retry":
			h.recordIn(msg.Type)
			if _, err := h.views.Retry(viewID); err != nil {
				h.sendError(cn, err.Error())
			}
		default:
			h.recordIn("unknown")
			h.sendError(cn, "unknown message type")
		}
	}
}

func (h *Handler) write(cn *conn, msgType string, data interface{}) error {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msgType)
	}
	return cn.send(data)
}

func (h *Handler) recordIn(msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("in", msgType)
	}
}

func (h *Handler) sendError(cn *conn, msg string) error {
	return h.write(cn, "error", map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
