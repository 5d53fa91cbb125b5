// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/providers/generation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// SampleBlueprint is a generated blueprint in the shape the prompt asks for.
const SampleBlueprint = `## 📊 Executive Summary
The **global** market for autonomous farming is expanding fast.

## 🛠 Tech Stack
- **Edge AI** controllers per unit
- Hydroponic dosing pumps

## 🗺 Roadmap
1. Prototype tower
2. Pilot with **three** buildings
3. Regional rollout`

// MockGenerator is a mock implementation of generation.Generator for testing.
type MockGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method.
func (m *MockGenerator) Generate(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

// NewMockGenerator creates a mock generator that answers every title with
// SampleBlueprint.
func NewMockGenerator(t *testing.T) *MockGenerator {
	t.Helper()
	m := new(MockGenerator)

	m.On("Generate", mock.Anything, mock.Anything).
		Return(SampleBlueprint, nil).
		Maybe()

	return m
}

// BlockingGenerator returns a generator that waits for release (or for its
// context to end) before answering with text. Calls after the first do not
// wait once release is closed.
func BlockingGenerator(release <-chan struct{}, text string) generation.GeneratorFunc {
	return func(ctx context.Context, title string) (string, error) {
		select {
		case <-release:
			return text, nil
		case <-ctx.Done():
			return "", &generation.Error{
				Kind:    generation.KindTransport,
				Message: generation.MessageFailed,
				Cause:   ctx.Err(),
			}
		}
	}
}

// FailingGenerator returns a generator that always fails with kind.
func FailingGenerator(kind generation.Kind) generation.GeneratorFunc {
	msg := generation.MessageFailed
	if kind == generation.KindEmpty {
		msg = generation.MessageEmpty
	}
	return func(ctx context.Context, title string) (string, error) {
		return "", &generation.Error{Kind: kind, Message: msg}
	}
}

// CreateTestCatalog creates a catalog with the built-in ideas plus extras.
func CreateTestCatalog(t *testing.T, extra ...catalog.Idea) *catalog.Catalog {
	t.Helper()

	cat := catalog.Default()
	for _, idea := range extra {
		require.NoError(t, cat.Add(idea))
	}
	return cat
}

// Eventually polls cond until it holds or the wait expires.
func Eventually(t *testing.T, cond func() bool, msgAndArgs ...interface{}) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msgAndArgs...)
}
