package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/venture-blueprint/tests/helpers/testutil"
)

type frame struct {
	Type    string     `json:"type"`
	Message string     `json:"message"`
	ViewID  string     `json:"view_id"`
	Event   view.Event `json:"event"`
}

func setup(t *testing.T, release chan struct{}) (*view.Manager, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	views := view.NewManager(testutil.CreateTestCatalog(t), testutil.BlockingGenerator(release, testutil.SampleBlueprint), zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = views.Shutdown(ctx)
	})

	r := gin.New()
	r.GET("/views/:id/stream", NewHandler(views, monitoring.NewMetrics(), zap.NewNop()).HandleView)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return views, srv
}

func dial(t *testing.T, srv *httptest.Server, viewID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/views/" + viewID + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestStreamFollowsViewLifecycle(t *testing.T) {
	release := make(chan struct{})
	views, srv := setup(t, release)

	opened, err := views.Open("1")
	require.NoError(t, err)

	conn := dial(t, srv, opened.ID.String())

	welcome := read(t, conn)
	assert.Equal(t, "system", welcome.Type)
	assert.Equal(t, opened.ID.String(), welcome.ViewID)

	first := read(t, conn)
	assert.Equal(t, "state", first.Type)
	assert.Equal(t, view.StateLoading, first.Event.State)
	assert.Equal(t, "COMPUTING_BLUEPRINT...", first.Event.Label)

	close(release)

	ready := read(t, conn)
	assert.Equal(t, view.StateReady, ready.Event.State)
	assert.Equal(t, "BLUEPRINT_READY", ready.Event.Label)
	assert.Positive(t, ready.Event.Blocks)

	require.NoError(t, views.Close(opened.ID))

	closed := read(t, conn)
	assert.Equal(t, "closed", closed.Type)
}

func TestStreamPingAndUnknownMessages(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	views, srv := setup(t, release)

	opened, err := views.Open("2")
	require.NoError(t, err)

	conn := dial(t, srv, opened.ID.String())
	read(t, conn) // system
	read(t, conn) // current state

	require.NoError(t, conn.WriteJSON(Message{Type: "ping"}))
	assert.Equal(t, "pong", read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(Message{Type: "launch"}))
	reply := read(t, conn)
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "unknown message type", reply.Message)

	// Still loading, so a retry is rejected
	require.NoError(t, conn.WriteJSON(Message{Type: "retry"}))
	reply = read(t, conn)
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Message, "in flight")
}

func TestStreamUnknownView(t *testing.T) {
	_, srv := setup(t, make(chan struct{}))

	resp, err := http.Get(srv.URL + "/views/01ARZ3NDEKTSV4RRFFQ69G5FAV/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/views/01ARZ3NDEKTSV4RRFFQ69G5FAV/stream"
	_, dialResp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, dialResp)
	assert.Equal(t, http.StatusNotFound, dialResp.StatusCode)
}
