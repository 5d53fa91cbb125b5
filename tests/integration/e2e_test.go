//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/config"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/server"
	"github.com/GriffinCanCode/venture-blueprint/tests/helpers/testutil"
)

// fakeGemini answers generateContent with text and counts calls.
func fakeGemini(t *testing.T, text string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.Header.Get("x-goog-api-key") != "integration-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func startServer(t *testing.T, geminiURL string) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.Logging.File = filepath.Join(t.TempDir(), "server.log")
	cfg.Generation.APIKey = "integration-key"
	cfg.Generation.BaseURL = geminiURL
	cfg.Generation.Retries = 0

	srv, err := server.NewServer(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return ts
}

// TestEndToEndWorkflow tests the complete flow:
// open view -> stream state -> generated content -> HTML page
func TestEndToEndWorkflow(t *testing.T) {
	var calls int32
	gemini := fakeGemini(t, testutil.SampleBlueprint, &calls)
	ts := startServer(t, gemini.URL)

	resp, err := http.Post(ts.URL+"/views", "application/json", strings.NewReader(`{"idea_id":"1"}`))
	require.NoError(t, err)
	var opened struct {
		View struct {
			ID string `json:"id"`
		} `json:"view"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opened))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("Stream reaches ready", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/views/" + opened.View.ID + "/stream"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		deadline := time.Now().Add(5 * time.Second)
		for {
			require.NoError(t, conn.SetReadDeadline(deadline))
			var frame struct {
				Type  string `json:"type"`
				Event struct {
					State string `json:"state"`
				} `json:"event"`
			}
			require.NoError(t, conn.ReadJSON(&frame))
			if frame.Type == "state" && frame.Event.State == "ready" {
				break
			}
		}
	})

	t.Run("HTML page is compressed and complete", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/views/"+opened.View.ID+"/html", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Encoding", "gzip")

		// A bare transport leaves the body encoded
		resp, err := (&http.Transport{DisableCompression: true}).RoundTrip(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

		zr, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
		require.NoError(t, err)
		assert.Equal(t, 3, doc.Find("h3.bp-header").Length())
		assert.Contains(t, doc.Find(".status").Text(), "BLUEPRINT_READY")
	})

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "a view fetches once")
}

// TestConcurrentRequests opens many views at once; each is fetched exactly once.
func TestConcurrentRequests(t *testing.T) {
	var calls int32
	gemini := fakeGemini(t, testutil.SampleBlueprint, &calls)
	ts := startServer(t, gemini.URL)

	const n = 20
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(ts.URL+"/views", "application/json", strings.NewReader(`{"idea_id":"3"}`))
			if err != nil {
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}
	testutil.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == n
	}, "expected one generation per view")
}
