/*
Package tracing provides distributed tracing for debugging production issues.

# Overview

This package implements lightweight distributed tracing to track requests
from the HTTP API through view fetches into the text-generation service. It
follows OpenTelemetry concepts with a minimal implementation.

# Features

- Trace context propagation via HTTP headers
- Span creation and management with parent-child relationships
- Automatic trace ID generation
- Gin middleware for automatic instrumentation
- Structured logging integration
- Low overhead with buffered span collection

# Usage

	// Create tracer
	tracer := tracing.New("blueprint", logger)
	defer tracer.Close()

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation around a generation call
	span, ctx := tracer.StartSpan(ctx, "generation.generate")
	span.SetTag("idea.title", title)
	text, err := generator.Generate(ctx, title)
	tracer.End(span, err)

	// Propagate to an outgoing request
	tracing.Inject(ctx, req.Header)

# Trace Format

Traces use standard HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation

# Performance

The tracing system is designed for minimal overhead:
- Buffered span collection (1000 spans)
- Async span processing
- Structured logging integration
- No external dependencies
*/
package tracing
