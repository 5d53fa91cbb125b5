package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/shared/utils"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	ideas := cat.List("")
	require.Len(t, ideas, 5)
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		assert.Equal(t, want, ideas[i].ID)
	}

	idea, err := cat.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Drone Security Service", idea.Title)
	assert.Equal(t, "🛸", idea.Icon)

	assert.Equal(t, []string{"AgriTech", "Communications", "FinTech / Energy", "HealthTech", "Security"}, cat.Categories())
}

func TestGetNotFound(t *testing.T) {
	_, err := Default().Get("42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByCategory(t *testing.T) {
	cat := Default()

	ideas := cat.List("healthtech")
	require.Len(t, ideas, 1)
	assert.Equal(t, "4", ideas[0].ID)

	assert.Empty(t, cat.List("Mining"))
}

func TestAddValidatesAndReplaces(t *testing.T) {
	cat := Default()

	assert.ErrorIs(t, cat.Add(Idea{Title: "No id"}), ErrInvalidIdea)
	assert.ErrorIs(t, cat.Add(Idea{ID: "9"}), ErrInvalidIdea)
	for _, id := range []string{"idea.7", "orbital data", "x/y", " 7"} {
		assert.ErrorIs(t, cat.Add(Idea{ID: id, Title: "Orbital Data Centers"}), ErrInvalidIdea, id)
	}
	assert.Equal(t, 5, cat.Len())

	require.NoError(t, cat.Add(Idea{ID: "1", Title: "Urban Farming 2.0", Category: "AgriTech"}))
	assert.Equal(t, 5, cat.Len())
	assert.Equal(t, "Urban Farming 2.0", cat.List("")[0].Title, "replacement keeps position")

	require.NoError(t, cat.Add(Idea{ID: "6", Title: "Orbital Data Centers"}))
	assert.Equal(t, "6", cat.List("")[5].ID)
}

func TestConcurrentAccess(t *testing.T) {
	cat := Default()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = cat.Add(Idea{ID: DeriveID(string(rune('a' + i))), Title: "t"})
		}(i)
		go func() {
			defer wg.Done()
			_ = cat.List("")
			_, _ = cat.Get("1")
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, cat.Len())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSeederLoadsAllFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "space.yaml", `
ideas:
  - id: orbital-dc
    title: Orbital Data Centers
    category: Infrastructure
    short_description: Solar-powered compute in low earth orbit.
    icon: "🛰"
`)
	writeFile(t, dir, "nested/ocean.toml", `
[[ideas]]
title = "Kelp Carbon Farms"
category = "ClimateTech"
`)
	writeFile(t, dir, "nested/deep/bio.json", `{"ideas":[{"id":"bio-1","title":"Synthetic Biology Kits","category":"BioTech"}]}`)
	writeFile(t, dir, "notes.md", "# ignored")
	writeFile(t, dir, "broken.json", `{"ideas": [`)
	writeFile(t, dir, "invalid.yml", "ideas:\n  - category: NoTitle\n")

	cat := Default()
	result, err := NewSeeder(cat, dir, "", zap.NewNop()).Seed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Files)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 8, cat.Len())

	idea, err := cat.Get("orbital-dc")
	require.NoError(t, err)
	assert.Equal(t, "🛰", idea.Icon)

	kelp, err := cat.Get(DeriveID("Kelp Carbon Farms"))
	require.NoError(t, err)
	assert.Equal(t, "ClimateTech", kelp.Category)

	_, err = cat.Get("bio-1")
	assert.NoError(t, err)
}

func TestSeederPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "ideas:\n  - title: A\n")
	writeFile(t, dir, "sub/b.yaml", "ideas:\n  - title: B\n")

	cat, err := New()
	require.NoError(t, err)
	result, err := NewSeeder(cat, dir, "*.yaml", zap.NewNop()).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Loaded)

	_, err = NewSeeder(cat, dir, "[", zap.NewNop()).Seed(context.Background())
	assert.Error(t, err)
}

func TestSeederMissingDirectory(t *testing.T) {
	cat := Default()
	result, err := NewSeeder(cat, filepath.Join(t.TempDir(), "absent"), "", zap.NewNop()).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, result)
	assert.Equal(t, 5, cat.Len())
}

func TestSeederLaterFilesOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01-base.yaml", "ideas:\n  - id: x\n    title: First\n")
	writeFile(t, dir, "02-override.yaml", "ideas:\n  - id: x\n    title: Second\n")

	cat, _ := New()
	_, err := NewSeeder(cat, dir, "", zap.NewNop()).Seed(context.Background())
	require.NoError(t, err)

	idea, err := cat.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "Second", idea.Title)
}

func TestSeederSkipsUnroutableIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ideas.yaml", "ideas:\n  - id: idea.7\n    title: Orbital Data Centers\n  - id: orbital-dc\n    title: Orbital Data Centers\n")

	cat, _ := New()
	result, err := NewSeeder(cat, dir, "", zap.NewNop()).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 1, result.Failed)

	_, err = cat.Get("idea.7")
	assert.ErrorIs(t, err, ErrNotFound)
	for _, idea := range cat.List("") {
		assert.Regexp(t, utils.SafeIDPattern, idea.ID)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(".xml", []byte("<ideas/>"))
	assert.Error(t, err)
}

func TestDeriveIDStable(t *testing.T) {
	assert.Equal(t, DeriveID("Kelp Carbon Farms"), DeriveID("  Kelp Carbon Farms "))
	assert.NotEqual(t, DeriveID("A"), DeriveID("B"))
	assert.Len(t, DeriveID("A"), 36)
}
