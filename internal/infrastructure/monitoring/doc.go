/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the blueprint
service, tracking HTTP requests, text-generation calls, view lifecycles and
parsed content. Every collector owns a private registry.

# Features

- HTTP request metrics (latency, throughput, size)
- Generation metrics (duration, errors by kind, cache hits)
- View lifecycle metrics (active, opened, fetch outcomes)
- Content metrics (blocks parsed per kind, dashboards computed, catalog size)
- WebSocket connection metrics
- Go runtime, process and uptime metrics

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.SetViewsActive(5)
	metrics.IncViewsOpened()

	// Time operations
	timer := monitoring.NewTimer(metrics, "blueprint", "parse")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
