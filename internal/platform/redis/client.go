package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings layered on top of the URL.
type Config struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns connection settings for the directory cache and ledger.
func DefaultConfig(url string) Config {
	return Config{
		URL:          url,
		PoolSize:     10,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// Client wraps the go-redis client with health checks and pool metrics.
type Client struct {
	*redis.Client

	mu        sync.Mutex
	lastStats *redis.PoolStats
	metrics   *poolMetrics
}

type poolMetrics struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	timeouts   prometheus.Counter
	totalConns prometheus.Gauge
	idleConns  prometheus.Gauge
}

func newPoolMetrics(reg prometheus.Registerer) *poolMetrics {
	f := promauto.With(reg)
	return &poolMetrics{
		hits: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_redis_pool_hits_total",
			Help: "Number of times a connection was found in the pool",
		}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_redis_pool_misses_total",
			Help: "Number of times a connection was not found in the pool",
		}),
		timeouts: f.NewCounter(prometheus.CounterOpts{
			Name: "carteira_redis_pool_timeouts_total",
			Help: "Number of times a connection was not obtained due to timeout",
		}),
		totalConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "carteira_redis_pool_total_conns",
			Help: "Number of total connections in the pool",
		}),
		idleConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "carteira_redis_pool_idle_conns",
			Help: "Number of idle connections in the pool",
		}),
	}
}

// New connects to Redis and verifies the connection with PING. reg may be
// nil to skip pool metrics.
func New(ctx context.Context, cfg Config, reg prometheus.Registerer) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	c := &Client{Client: client}
	if reg != nil {
		c.metrics = newPoolMetrics(reg)
	}
	return c, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats pushes the current pool statistics to Prometheus.
// Counters advance by the delta since the previous call.
func (c *Client) RecordPoolStats() {
	if c.metrics == nil {
		return
	}
	stats := c.PoolStats()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics.totalConns.Set(float64(stats.TotalConns))
	c.metrics.idleConns.Set(float64(stats.IdleConns))

	var prev redis.PoolStats
	if c.lastStats != nil {
		prev = *c.lastStats
	}
	if stats.Hits > prev.Hits {
		c.metrics.hits.Add(float64(stats.Hits - prev.Hits))
	}
	if stats.Misses > prev.Misses {
		c.metrics.misses.Add(float64(stats.Misses - prev.Misses))
	}
	if stats.Timeouts > prev.Timeouts {
		c.metrics.timeouts.Add(float64(stats.Timeouts - prev.Timeouts))
	}
	c.lastStats = stats
}

// RunPoolStats records pool statistics every interval until ctx is done.
func (c *Client) RunPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RecordPoolStats()
		}
	}
}
