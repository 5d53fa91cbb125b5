// Package http provides HTTP handlers and routing for the blueprint REST API.
//
// This package implements all HTTP endpoints using the Gin framework: the
// idea catalog, the deterministic dashboards, content parsing and the view
// lifecycle.
//
// Endpoints:
//   - Health: / and /health
//   - Catalog: /ideas, /ideas/:id, /ideas/:id/dashboard
//   - Parsing: /parse
//   - Views: /views, /views/:id, /views/:id/retry, /views/:id/html
//   - Metrics digest: /metrics/json
//
// Status codes:
//   - 400 invalid ids, categories, states or bodies
//   - 404 unknown idea or view
//   - 409 retry while a fetch is in flight
//
// Example Usage:
//
//	handlers := http.NewHandlers(catalog, views, renderer, gemini, metrics, logger)
//	handlers.Register(router)
package http
