package generation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/resilience"
)

const sampleText = "## 📊 Executive Summary\n- **Revenue**: grows fast"

func testConfig(baseURL string) Config {
	return Config{
		APIKey:       "test-key",
		Model:        "gemini-test",
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		Retries:      2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func candidateBody(t *testing.T, texts ...string) string {
	parts := make([]map[string]interface{}, len(texts))
	for i, text := range texts {
		parts[i] = map[string]interface{}{"text": text}
	}
	body, err := sonic.MarshalString(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content":      map[string]interface{}{"role": "model", "parts": parts},
				"finishReason": "STOP",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req generateRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &req))
		gotPrompt = req.Contents[0].Parts[0].Text

		writeJSON(w, http.StatusOK, candidateBody(t, "## 📊 Executive Summary\n", "- **Revenue**: grows fast"))
	}))
	defer server.Close()

	client := NewGeminiClient(testConfig(server.URL), zap.NewNop())
	text, err := client.Generate(context.Background(), "Neural Wellness Spas")

	require.NoError(t, err)
	assert.Equal(t, sampleText, text)
	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, BuildPrompt("Neural Wellness Spas"), gotPrompt)
}

func TestGenerateMissingKeyMakesNoRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = ""
	_, err := NewGeminiClient(cfg, zap.NewNop()).Generate(context.Background(), "x")

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindCredentials, genErr.Kind)
	assert.Equal(t, MessageFailed, genErr.Message)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestGenerateFailureKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    Kind
		message string
	}{
		{
			name:    "invalid key",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT","details":[{"reason":"API_KEY_INVALID"}]}}`,
			want:    KindCredentials,
			message: MessageFailed,
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`,
			want:    KindCredentials,
			message: MessageFailed,
		},
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"model not found","status":"INVALID_ARGUMENT"}}`,
			want:    KindTransport,
			message: MessageFailed,
		},
		{
			name:    "upstream down",
			status:  http.StatusServiceUnavailable,
			body:    `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`,
			want:    KindTransport,
			message: MessageFailed,
		},
		{
			name:    "empty text",
			status:  http.StatusOK,
			body:    `{"candidates":[{"content":{"parts":[{"text":""}]},"finishReason":"SAFETY"}]}`,
			want:    KindEmpty,
			message: MessageEmpty,
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			want:    KindEmpty,
			message: MessageEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer server.Close()

			_, err := NewGeminiClient(testConfig(server.URL), zap.NewNop()).Generate(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, tt.message, UserMessage(err))
		})
	}
}

func TestGenerateRetriesTransientErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			writeJSON(w, http.StatusTooManyRequests, `{"error":{"code":429,"message":"slow down"}}`)
			return
		}
		writeJSON(w, http.StatusOK, candidateBody(t, sampleText))
	}))
	defer server.Close()

	text, err := NewGeminiClient(testConfig(server.URL), zap.NewNop()).Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, sampleText, text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestGenerateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	cfg := testConfig(url)
	cfg.Retries = 0
	_, err := NewGeminiClient(cfg, zap.NewNop()).Generate(context.Background(), "x")
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestGenerateCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewGeminiClient(testConfig(server.URL), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Generate(ctx, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, resilience.StateClosed, client.BreakerState(), "cancellation is not an upstream fault")
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusInternalServerError, `{"error":{"code":500,"message":"boom"}}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retries = 0
	client := NewGeminiClient(cfg, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := client.Generate(context.Background(), "x")
		assert.Equal(t, KindTransport, KindOf(err))
	}
	assert.Equal(t, resilience.StateOpen, client.BreakerState())

	_, err := client.Generate(context.Background(), "x")
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
}

func TestCredentialFailuresDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"code":401,"message":"unauthenticated"}}`)
	}))
	defer server.Close()

	client := NewGeminiClient(testConfig(server.URL), zap.NewNop())
	for i := 0; i < 10; i++ {
		_, _ = client.Generate(context.Background(), "x")
	}
	assert.Equal(t, resilience.StateClosed, client.BreakerState())
}

func TestGenerateRecordsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, candidateBody(t, sampleText))
	}))
	defer server.Close()

	metrics := monitoring.NewMetrics()
	client := NewGeminiClient(testConfig(server.URL), zap.NewNop(), WithMetrics(metrics))

	_, err := client.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GenerationCalls.WithLabelValues("success")))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Hyper-Local Energy Trading")

	assert.True(t, strings.HasPrefix(prompt, "Analyze the business idea: Hyper-Local Energy Trading."))
	for _, section := range []string{
		"📊 Executive Summary",
		"🚀 Marketing & Branding (Viral angles)",
		"💰 Sales Strategy",
		"🛠 Tech Stack & Tools",
		"📅 Step-by-Step Launch Guide",
	} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, "Format as clean Markdown")
}

func TestDefaultsApplied(t *testing.T) {
	client := NewGeminiClient(Config{APIKey: "k"}, zap.NewNop())
	assert.Equal(t, "gemini-2.5-flash", client.Model())
}
