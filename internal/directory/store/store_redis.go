package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"carteira/internal/directory"
	"carteira/internal/directory/metrics"
	"carteira/pkg/platform/circuit"
)

const (
	redisStudentKeyPrefix = "directory:student:"
	defaultCacheTTL       = 10 * time.Minute
)

// RedisCache is a read-through cache in front of another Repository.
// Records are stored as JSON with a TTL. Absent records are never cached,
// so a student added to the backing store is visible on the next lookup.
// Redis failures degrade to the backing store. While the breaker is open,
// reads still try Redis but writes are skipped.
type RedisCache struct {
	next    directory.Repository
	client  redis.Cmdable
	ttl     time.Duration
	breaker *circuit.Breaker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type CacheOption func(*RedisCache)

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *RedisCache) {
		c.metrics = m
	}
}

func WithCacheBreaker(b *circuit.Breaker) CacheOption {
	return func(c *RedisCache) {
		if b != nil {
			c.breaker = b
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

// NewRedisCache wraps next with a Redis read-through cache.
func NewRedisCache(next directory.Repository, client redis.Cmdable, opts ...CacheOption) *RedisCache {
	c := &RedisCache{
		next:    next,
		client:  client,
		ttl:     defaultCacheTTL,
		breaker: circuit.New("directory_cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) Lookup(ctx context.Context, registration string) (*directory.StudentRecord, error) {
	if rec, ok := c.get(ctx, registration); ok {
		return rec, nil
	}

	rec, err := c.next.Lookup(ctx, registration)
	if err != nil {
		return nil, err
	}
	c.set(ctx, rec)
	return rec, nil
}

// Invalidate drops cached records, e.g. after the backing store was re-seeded.
func (c *RedisCache) Invalidate(ctx context.Context, registrations ...string) error {
	if len(registrations) == 0 {
		return nil
	}
	keys := make([]string, len(registrations))
	for i, reg := range registrations {
		keys[i] = studentKey(reg)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) get(ctx context.Context, registration string) (*directory.StudentRecord, bool) {
	start := time.Now()
	data, err := c.client.Get(ctx, studentKey(registration)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.recordMiss(start)
			c.succeeded(ctx)
			return nil, false
		}
		c.recordError("get")
		c.logger.WarnContext(ctx, "directory cache read failed", "error", err)
		c.failed(ctx, err)
		return nil, false
	}
	c.succeeded(ctx)

	var rec directory.StudentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		c.recordError("decode")
		c.logger.WarnContext(ctx, "directory cache entry corrupt", "error", err)
		return nil, false
	}
	c.recordHit(start)
	return &rec, true
}

func (c *RedisCache) set(ctx context.Context, rec *directory.StudentRecord) {
	if c.breaker.IsOpen() {
		return
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		c.recordError("encode")
		return
	}
	if err := c.client.Set(ctx, studentKey(rec.RegistrationNumber), payload, c.ttl).Err(); err != nil {
		c.recordError("set")
		c.logger.WarnContext(ctx, "directory cache write failed", "error", err)
		c.failed(ctx, err)
	}
}

func (c *RedisCache) failed(ctx context.Context, err error) {
	if c.breaker.RecordFailure().Opened {
		c.logger.ErrorContext(ctx, "circuit breaker opened", "circuit", c.breaker.Name(), "error", err)
	}
}

func (c *RedisCache) succeeded(ctx context.Context) {
	if c.breaker.RecordSuccess().Closed {
		c.logger.InfoContext(ctx, "circuit breaker closed", "circuit", c.breaker.Name())
	}
}

func (c *RedisCache) recordHit(start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCacheHit(time.Since(start).Seconds())
}

func (c *RedisCache) recordMiss(start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCacheMiss(time.Since(start).Seconds())
}

func (c *RedisCache) recordError(op string) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCacheError(op)
}

func studentKey(registration string) string {
	return redisStudentKeyPrefix + registration
}

var _ directory.Repository = (*RedisCache)(nil)
