// Package main is the entry point for the Venture Blueprint server.
//
// The server serves the idea catalog, deterministic market dashboards and
// generated business blueprints over REST and WebSocket.
//
// Architecture:
//
//	Client → Go Backend → Gemini generateContent (REST)
//	                    → Redis (optional generation cache)
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	API_KEY=... ./server -port 8000 -catalog ./ideas
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
