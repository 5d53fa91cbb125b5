package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/tests/helpers/testutil"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIdeasCommand(t *testing.T) {
	out, err := run(t, "", "ideas")
	require.NoError(t, err)
	assert.Contains(t, out, "AI-Powered Urban Farming")
	assert.Contains(t, out, "Drone Security Service")

	out, err = run(t, "", "ideas", "--category", "healthtech")
	require.NoError(t, err)
	assert.Contains(t, out, "Neural Wellness Spas")
	assert.NotContains(t, out, "Drone Security Service")

	_, err = run(t, "", "ideas", "--category", "nope")
	assert.Error(t, err)
}

func TestIdeasCommandWithCatalogDir(t *testing.T) {
	dir := t.TempDir()
	seed := []byte("[[ideas]]\nid = \"orbital\"\ntitle = \"Orbital Data Centers\"\ncategory = \"Infrastructure\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "space.toml"), seed, 0o644))

	out, err := run(t, "", "ideas", "--catalog", dir, "--category", "Infrastructure")
	require.NoError(t, err)
	assert.Contains(t, out, "Orbital Data Centers")
}

func TestDashboardCommand(t *testing.T) {
	out, err := run(t, "", "dashboard", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "MARKET VELOCITY (2024-2030)")
	assert.Contains(t, out, "Scalability")

	out, err = run(t, "", "dashboard", "1", "--json")
	require.NoError(t, err)

	var dash venture.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, venture.Compute("1"), dash)

	_, err = run(t, "", "dashboard", "999")
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte(testutil.SampleBlueprint), 0o644))

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Edge AI")
	assert.NotContains(t, out, "**")

	out, err = run(t, testutil.SampleBlueprint, "parse", "-", "--outline")
	require.NoError(t, err)
	assert.Equal(t, "📊 Executive Summary\n🛠 Tech Stack\n🗺 Roadmap\n", out)

	_, err = run(t, "", "parse", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func geminiServer(t *testing.T, text string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		body := map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]string{{"text": text}},
				},
				"finishReason": "STOP",
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestShowCommand(t *testing.T) {
	var hits int32
	srv := geminiServer(t, testutil.SampleBlueprint, &hits)
	t.Setenv("API_KEY", "test-key")
	t.Setenv("GENERATION_RETRIES", "0")

	out, err := run(t, "", "show", "1", "1", "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "STATUS: BLUEPRINT_READY"))
	assert.Contains(t, out, "Pilot with")
	assert.Contains(t, out, "GENERATED BY GEMINI-2.5-FLASH")
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "repeated ideas are generated once")
}

func TestShowCommandFailure(t *testing.T) {
	t.Setenv("API_KEY", "")

	out, err := run(t, "", "show", "2")
	require.Error(t, err)
	assert.Contains(t, out, "STATUS: SYSTEM FAILURE")
	assert.Contains(t, out, "Failed to generate blueprint. Please check your connection or API key.")

	_, err = run(t, "", "show", "999")
	assert.Error(t, err)
}
