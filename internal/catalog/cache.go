package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/blockedby/starred-jobs/internal/logger"
)

// Cache TTLs for catalog responses.
const (
	ListTTL = 60 * time.Second
	JobTTL  = 300 * time.Second
)

// Cache stores raw catalog response bodies. Implementations treat backend
// failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process LRU with per-entry expiry.
type MemoryCache struct {
	lru *expirable.LRU[string, cacheEntry]
	now func() time.Time
}

// NewMemoryCache creates a cache holding at most size entries.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = 256
	}
	return &MemoryCache{
		// the LRU's own TTL bounds memory; per-entry expiry is checked on Get
		lru: expirable.NewLRU[string, cacheEntry](size, nil, JobTTL),
		now: time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.lru.Add(key, cacheEntry{value: value, expiresAt: c.now().Add(ttl)})
}

// Len reports the number of stored entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// RedisCache shares catalog responses between browser instances.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// NewRedisCache wraps client; keys are stored under "starred:catalog:".
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "starred:catalog:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Component("catalog").Debug().Err(err).Str("key", key).Msg("redis cache get failed")
		}
		return nil, false
	}
	return b, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		logger.Component("catalog").Debug().Err(err).Str("key", key).Msg("redis cache set failed")
	}
}

// noCache is used when caching is disabled.
type noCache struct{}

func (noCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noCache) Set(context.Context, string, []byte, time.Duration) {}
