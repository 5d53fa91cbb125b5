/*
Package resilience provides circuit breaker implementation for graceful degradation.

# Overview

This package implements the circuit breaker pattern to prevent cascading failures
and provide graceful degradation when services become unavailable or slow.

# Features

- Three-state circuit breaker (Closed, Open, Half-Open)
- Caller-defined trip rule and health predicate (a bad key does not trip)
- Stale results from an earlier period are ignored
- Generic Do helper with context awareness

# Usage

	breaker := resilience.New(resilience.Settings{
		Probes:   1,
		Window:   60 * time.Second,
		Cooldown: 30 * time.Second,
		Trip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnTransition: func(from, to resilience.State) {
			logger.Warn("breaker", zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})

	text, err := resilience.Do(ctx, breaker, func(ctx context.Context) (string, error) {
		return client.Generate(ctx, title)
	})

# States

- Closed: Normal operation, requests pass through
- Open: Service unavailable, requests fail immediately
- Half-Open: Testing if service recovered, limited requests allowed

# Pattern

The circuit breaker transitions between states based on success/failure rates:

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
