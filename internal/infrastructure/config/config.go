package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Generation GenerationConfig
	Catalog    CatalogConfig
	Cache      CacheConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// GenerationConfig holds text-generation service configuration.
type GenerationConfig struct {
	APIKey            string        `envconfig:"API_KEY"`
	Model             string        `envconfig:"GENERATION_MODEL" default:"gemini-2.5-flash"`
	BaseURL           string        `envconfig:"GENERATION_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Timeout           time.Duration `envconfig:"GENERATION_TIMEOUT" default:"60s"`
	Retries           int           `envconfig:"GENERATION_RETRIES" default:"3"`
	RequestsPerSecond float64       `envconfig:"GENERATION_RPS" default:"0"`
}

// CatalogConfig holds idea catalog seeding configuration.
type CatalogConfig struct {
	Dir     string `envconfig:"CATALOG_DIR"`
	Pattern string `envconfig:"CATALOG_PATTERN" default:"**/*.{yaml,yml,toml,json}"`
}

// CacheConfig holds the generation cache configuration. An empty address
// disables caching.
type CacheConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"24h"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds cross-origin configuration.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		Generation: GenerationConfig{
			Model:   "gemini-2.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 60 * time.Second,
			Retries: 3,
		},
		Catalog: CatalogConfig{
			Pattern: "**/*.{yaml,yml,toml,json}",
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
	}
}

// Address returns the host:port the HTTP server listens on.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Addr != ""
}
