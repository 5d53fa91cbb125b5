package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/monitoring"
)

const cacheKeyPrefix = "blueprint:generation:"

// Store persists generated text by key.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	rdb redis.UniversalClient
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// MemoryStore is an in-process Store, used by the CLI and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || (!e.expires.IsZero() && !s.now().Before(e.expires)) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

// CachedGenerator serves repeated titles from a Store. Only successful
// generations are stored, and cache faults never fail a generation.
type CachedGenerator struct {
	next    Generator
	store   Store
	ttl     time.Duration
	scope   string
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewCachedGenerator wraps next. scope separates entries of different
// models sharing one store.
func NewCachedGenerator(next Generator, store Store, ttl time.Duration, scope string, logger *zap.Logger, metrics *monitoring.Metrics) *CachedGenerator {
	return &CachedGenerator{
		next:    next,
		store:   store,
		ttl:     ttl,
		scope:   scope,
		logger:  logger.Named("generation.cache"),
		metrics: metrics,
	}
}

// Key returns the store key for a title.
func (g *CachedGenerator) Key(title string) string {
	return cacheKeyPrefix + g.scope + ":" + title
}

// Generate implements Generator.
func (g *CachedGenerator) Generate(ctx context.Context, title string) (string, error) {
	key := g.Key(title)

	cached, found, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	if g.metrics != nil && err == nil {
		g.metrics.RecordCacheLookup(found)
	}
	if found {
		return cached, nil
	}

	text, err := g.next.Generate(ctx, title)
	if err != nil {
		return "", err
	}

	if err := g.store.Set(ctx, key, text, g.ttl); err != nil {
		g.logger.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
	}
	return text, nil
}
