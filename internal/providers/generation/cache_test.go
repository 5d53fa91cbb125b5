package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

func TestRedisStore(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	store := NewRedisStoreFromClient(db)
	ctx := context.Background()

	rmock.ExpectGet("k1").RedisNil()
	_, found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)

	rmock.ExpectSet("k1", "text", time.Hour).SetVal("OK")
	require.NoError(t, store.Set(ctx, "k1", "text", time.Hour))

	rmock.ExpectGet("k1").SetVal("text")
	val, found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "text", val)

	rmock.ExpectGet("k2").SetErr(errors.New("connection refused"))
	_, _, err = store.Get(ctx, "k2")
	assert.Error(t, err)

	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, store.Set(ctx, "b", "2", 0))

	val, found, _ := store.Get(ctx, "a")
	assert.True(t, found)
	assert.Equal(t, "1", val)

	now = now.Add(time.Minute)
	_, found, _ = store.Get(ctx, "a")
	assert.False(t, found, "entry expires at its deadline")

	_, found, _ = store.Get(ctx, "b")
	assert.True(t, found, "zero ttl never expires")
}

func TestCachedGeneratorHitAndMiss(t *testing.T) {
	next := new(mockGenerator)
	next.On("Generate", mock.Anything, "Drone Security Service").Return(sampleText, nil).Once()

	gen := NewCachedGenerator(next, NewMemoryStore(), time.Hour, "gemini-test", zap.NewNop(), nil)

	for i := 0; i < 3; i++ {
		text, err := gen.Generate(context.Background(), "Drone Security Service")
		require.NoError(t, err)
		assert.Equal(t, sampleText, text)
	}
	next.AssertNumberOfCalls(t, "Generate", 1)
	assert.Equal(t, "blueprint:generation:gemini-test:Drone Security Service", gen.Key("Drone Security Service"))
}

func TestCachedGeneratorDoesNotCacheFailures(t *testing.T) {
	failure := newError(KindTransport, errors.New("down"))
	next := new(mockGenerator)
	next.On("Generate", mock.Anything, "x").Return("", failure).Once()
	next.On("Generate", mock.Anything, "x").Return(sampleText, nil).Once()

	gen := NewCachedGenerator(next, NewMemoryStore(), time.Hour, "m", zap.NewNop(), nil)

	_, err := gen.Generate(context.Background(), "x")
	assert.Equal(t, KindTransport, KindOf(err))

	text, err := gen.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, sampleText, text)
	next.AssertExpectations(t)
}

func TestCachedGeneratorSurvivesStoreErrors(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	next := new(mockGenerator)
	next.On("Generate", mock.Anything, "x").Return(sampleText, nil)

	gen := NewCachedGenerator(next, NewRedisStoreFromClient(db), time.Hour, "m", zap.NewNop(), nil)
	rmock.ExpectGet(gen.Key("x")).SetErr(errors.New("timeout"))
	rmock.ExpectSet(gen.Key("x"), sampleText, time.Hour).SetErr(errors.New("timeout"))

	text, err := gen.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, sampleText, text)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestErrorHelpers(t *testing.T) {
	err := newError(KindEmpty, errors.New("no candidates"))
	assert.Equal(t, MessageEmpty, err.Message)
	assert.Contains(t, err.Error(), "no candidates")

	wrapped := errors.Join(errors.New("context"), err)
	assert.Equal(t, KindEmpty, KindOf(wrapped))
	assert.Equal(t, MessageEmpty, UserMessage(wrapped))

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, MessageFailed, UserMessage(errors.New("plain")))
}

func TestGeneratorFunc(t *testing.T) {
	var gen Generator = GeneratorFunc(func(ctx context.Context, title string) (string, error) {
		return "# " + title, nil
	})
	text, err := gen.Generate(context.Background(), "Idea")
	require.NoError(t, err)
	assert.Equal(t, "# Idea", text)
}
