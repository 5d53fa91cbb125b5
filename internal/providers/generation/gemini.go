package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/tracing"
)

const generatePath = "/v1beta/models/{model}:generateContent"

// ErrMissingAPIKey is the cause of a credentials failure when no key is configured.
var ErrMissingAPIKey = errors.New("API_KEY is not set")

// Config configures the Gemini REST client.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration // whole call, retries included
	Retries           int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RequestsPerSecond float64 // 0 = unlimited
}

// DefaultConfig returns the production client configuration without a key.
func DefaultConfig() Config {
	return Config{
		Model:        "gemini-2.5-flash",
		BaseURL:      "https://generativelanguage.googleapis.com",
		Timeout:      60 * time.Second,
		Retries:      3,
		RetryWaitMin: 1 * time.Second,
		RetryWaitMax: 10 * time.Second,
	}
}

// GeminiClient generates blueprint text with the Gemini generateContent API.
// Transient upstream errors (5xx, 429, connection resets) are retried by the
// transport; repeated failures open a circuit breaker.
type GeminiClient struct {
	cfg     Config
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *zap.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// Option customizes a GeminiClient.
type Option func(*GeminiClient)

// WithMetrics records call durations and failures.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *GeminiClient) { c.metrics = m }
}

// WithTracer opens a span per call and propagates it upstream.
func WithTracer(t *tracing.Tracer) Option {
	return func(c *GeminiClient) { c.tracer = t }
}

// NewGeminiClient creates a client. Zero Config fields fall back to DefaultConfig.
func NewGeminiClient(cfg Config, logger *zap.Logger, opts ...Option) *GeminiClient {
	cfg = withDefaults(cfg)

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil
	// Hand the final response back so its status can be classified
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "venture-blueprint/1.0").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	c := &GeminiClient{
		cfg:     cfg,
		resty:   restyClient,
		limiter: limiter,
		logger:  logger.Named("generation"),
	}

	c.breaker = resilience.New(resilience.Settings{
		Probes:   1,
		Window:   60 * time.Second,
		Cooldown: 30 * time.Second,
		Trip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		Healthy: countsAsSuccess,
		OnTransition: func(from, to resilience.State) {
			c.logger.Warn("Circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = def.RetryWaitMin
	}
	if cfg.RetryWaitMax < cfg.RetryWaitMin {
		cfg.RetryWaitMax = cfg.RetryWaitMin
	}
	return cfg
}

// Upstream faults trip the breaker; a bad key, an empty answer or a caller
// that gave up do not.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	kind := KindOf(err)
	return kind == KindCredentials || kind == KindEmpty
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.cfg.Model
}

// BreakerState reports the circuit breaker state for health checks.
func (c *GeminiClient) BreakerState() resilience.State {
	return c.breaker.State()
}

// Generate implements Generator.
func (c *GeminiClient) Generate(ctx context.Context, title string) (string, error) {
	start := time.Now()

	var span *tracing.Span
	if c.tracer != nil {
		span, ctx = c.tracer.StartSpan(ctx, "generation.generate")
		span.SetTag("generation.model", c.cfg.Model)
		span.SetTag("idea.title", title)
	}

	text, err := c.generate(ctx, title)

	if span != nil {
		c.tracer.End(span, err)
	}
	if c.metrics != nil {
		c.metrics.RecordGeneration(time.Since(start), string(KindOf(err)))
	}

	if err != nil {
		c.logger.Warn("Generation failed",
			zap.String("title", title),
			zap.String("kind", string(KindOf(err))),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	c.logger.Debug("Generation completed",
		zap.String("title", title),
		zap.Int("bytes", len(text)),
		zap.Duration("duration", time.Since(start)),
	)
	return text, nil
}

func (c *GeminiClient) generate(ctx context.Context, title string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", newError(KindCredentials, ErrMissingAPIKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", newError(KindUnavailable, fmt.Errorf("rate limit: %w", err))
	}

	text, err := resilience.Do(ctx, c.breaker, func(ctx context.Context) (string, error) {
		return c.call(ctx, title)
	})
	if err == nil {
		return text, nil
	}

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return "", newError(KindUnavailable, err)
	}
	var genErr *Error
	if errors.As(err, &genErr) {
		return "", genErr
	}
	return "", newError(KindTransport, err)
}

func (c *GeminiClient) call(ctx context.Context, title string) (string, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetPathParam("model", c.cfg.Model).
		SetHeader("x-goog-api-key", c.cfg.APIKey).
		SetBody(generateRequest{
			Contents: []content{{Role: "user", Parts: []part{{Text: BuildPrompt(title)}}}},
		}).
		SetResult(&generateResponse{}).
		SetError(&errorEnvelope{})
	tracing.Inject(ctx, req.Header)

	resp, err := req.Post(generatePath)
	if err != nil {
		return "", newError(KindTransport, err)
	}
	if resp.IsError() {
		return "", classify(resp)
	}

	result, ok := resp.Result().(*generateResponse)
	if !ok {
		return "", newError(KindTransport, fmt.Errorf("unexpected response body: %s", resp.String()))
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", newError(KindEmpty, result.emptyReason())
	}
	return text, nil
}

// classify maps an upstream error response to a failure kind.
func classify(resp *resty.Response) *Error {
	detail := fmt.Sprintf("status %d", resp.StatusCode())
	env, _ := resp.Error().(*errorEnvelope)
	if env != nil && env.Error.Message != "" {
		detail = fmt.Sprintf("status %d: %s", resp.StatusCode(), env.Error.Message)
	}
	cause := errors.New(detail)

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindCredentials, cause)
	case http.StatusBadRequest:
		if env != nil && env.rejectsKey() {
			return newError(KindCredentials, cause)
		}
	}
	return newError(KindTransport, cause)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// Text concatenates the text parts of the first candidate, skipping thoughts.
func (r *generateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func (r *generateResponse) emptyReason() error {
	switch {
	case r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "":
		return fmt.Errorf("prompt blocked: %s", r.PromptFeedback.BlockReason)
	case len(r.Candidates) == 0:
		return errors.New("no candidates returned")
	case r.Candidates[0].FinishReason != "":
		return fmt.Errorf("empty candidate, finish reason %s", r.Candidates[0].FinishReason)
	default:
		return errors.New("empty candidate")
	}
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason,omitempty"`
		} `json:"details,omitempty"`
	} `json:"error"`
}

func (e *errorEnvelope) rejectsKey() bool {
	for _, d := range e.Error.Details {
		if d.Reason == "API_KEY_INVALID" {
			return true
		}
	}
	return strings.Contains(strings.ToLower(e.Error.Message), "api key")
}
