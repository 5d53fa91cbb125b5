// Package ws streams blueprint view state over WebSocket connections.
//
// A client connects to /views/:id/stream and receives one frame per state
// change of that view, starting with its current state.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//   - retry: Discard the view content and fetch it again
//
// Message Types (Server → Client):
//   - system: Connection established
//   - state: View state event (state, label, error, block count)
//   - pong: Reply to ping
//   - error: Rejected client message
//   - closed: The view was closed; the connection ends
//
// Example Usage:
//
//	handler := ws.NewHandler(views, metrics, logger)
//	router.GET("/views/:id/stream", handler.HandleView)
package ws
