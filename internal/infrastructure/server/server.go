package server

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/api/http"
	"github.com/GriffinCanCode/venture-blueprint/internal/api/middleware"
	"github.com/GriffinCanCode/venture-blueprint/internal/api/ws"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/config"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/logging"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/venture-blueprint/internal/presentation/html"
	"github.com/GriffinCanCode/venture-blueprint/internal/providers/generation"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *nethttp.Server
	catalog *catalog.Catalog
	views   *view.Manager
	gemini  *generation.GeminiClient
	cache   *generation.RedisStore
	tracer  *tracing.Tracer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" && !cfg.Logging.Development {
		logCfg.Level = cfg.Logging.Level
	}
	logCfg.File = cfg.Logging.File

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing Venture Blueprint Server",
		zap.String("addr", cfg.Server.Address()),
		zap.String("model", cfg.Generation.Model),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	logger.Info("Performance monitoring initialized")

	// Initialize distributed tracing
	tracer := tracing.New("blueprint", logger.Logger)
	logger.Info("Distributed tracing initialized")

	// Build the idea catalog: built-ins, then seed files
	ideas := catalog.Default()
	if cfg.Catalog.Dir != "" {
		seeder := catalog.NewSeeder(ideas, cfg.Catalog.Dir, cfg.Catalog.Pattern, logger.Logger)
		if _, err := seeder.Seed(context.Background()); err != nil {
			logger.Warn("Failed to seed catalog", zap.Error(err))
		}
	}
	metrics.SetCatalogIdeas(ideas.Len())

	// Initialize the generation client
	if cfg.Generation.APIKey == "" {
		logger.Warn("API_KEY is not set, every blueprint fetch will fail")
	}
	gemini := generation.NewGeminiClient(generation.Config{
		APIKey:            cfg.Generation.APIKey,
		Model:             cfg.Generation.Model,
		BaseURL:           cfg.Generation.BaseURL,
		Timeout:           cfg.Generation.Timeout,
		Retries:           cfg.Generation.Retries,
		RequestsPerSecond: cfg.Generation.RequestsPerSecond,
	}, logger.Logger, generation.WithMetrics(metrics), generation.WithTracer(tracer))

	var (
		generator generation.Generator = gemini
		cache     *generation.RedisStore
	)
	if cfg.CacheEnabled() {
		store, err := generation.NewRedisStore(context.Background(), generation.RedisOptions{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			// The cache is optional, serve uncached
			logger.Warn("Generation cache unavailable", zap.Error(err))
		} else {
			cache = store
			generator = generation.NewCachedGenerator(gemini, store, cfg.Cache.TTL, gemini.Model(), logger.Logger, metrics)
			logger.Info("Generation cache enabled", zap.String("addr", cfg.Cache.Addr), zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	// Initialize view manager
	views := view.NewManager(ideas, generator, logger.Logger).
		WithMetrics(metrics).
		WithTimeout(cfg.Generation.Timeout).
		WithModel(gemini.Model())

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.Origins...)))
	router.Use(middleware.Compress())
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := http.NewHandlers(ideas, views, html.NewRenderer(), gemini, http.NewHandlerMetrics(metrics), logger.Logger)
	wsHandler := ws.NewHandler(views, metrics, logger.Logger)

	// Register routes
	handlers.Register(router)

	// WebSocket
	router.GET("/views/:id/stream", wsHandler.HandleView)

	// Metrics endpoints
	metricsAggregator := http.NewMetricsAggregator(metrics, views, gemini)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", metricsAggregator.GetAggregatedMetrics)

	logger.Info("Server initialized successfully", zap.Int("ideas", ideas.Len()))

	httpServer := &nethttp.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		router:  router,
		http:    httpServer,
		catalog: ideas,
		views:   views,
		gemini:  gemini,
		cache:   cache,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() nethttp.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops. A server stopped by
// Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, cancels in-flight blueprint fetches and
// releases the cache, tracer and logger.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop http server: %w", err))
	}

	if err := s.views.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop view fetches: %w", err))
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close generation cache: %w", err))
		} else {
			s.logger.Info("Closed generation cache")
		}
	}

	s.tracer.Close()

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("Shutdown incomplete", zap.Error(err))
		_ = s.logger.Close()
		return err
	}

	s.logger.Info("Server stopped")
	return s.logger.Close()
}
