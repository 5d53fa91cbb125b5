// Package config provides 12-factor configuration management for the blueprint service.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown timeout)
//   - Generation: text-generation API key, model, endpoint, timeout and pacing
//   - Catalog: optional directory of extra idea files
//   - Cache: optional Redis cache for generated text
//   - Logging: Log level, output format and rotating log file
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: allowed origins
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Address())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - API_KEY, GENERATION_MODEL, GENERATION_BASE_URL, GENERATION_TIMEOUT, GENERATION_RETRIES, GENERATION_RPS
//   - CATALOG_DIR, CATALOG_PATTERN
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, CACHE_TTL
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS
package config
