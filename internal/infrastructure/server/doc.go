// Package server wires the blueprint service together and runs it.
//
// Server Lifecycle:
//  1. Initialize logger, metrics and tracer from configuration
//  2. Build the idea catalog (built-ins, then seed files)
//  3. Create the Gemini client, wrapped in the Redis cache when configured
//  4. Create the view manager
//  5. Setup middleware and routes (REST, WebSocket, metrics)
//  6. Serve until Shutdown, which cancels in-flight fetches
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	defer srv.Shutdown(ctx)
package server
