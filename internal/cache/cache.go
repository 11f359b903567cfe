// Package cache is a TTL'd key-value layer in front of the aggregation
// pipeline. Every failure degrades: a broken read is a miss, a broken write
// is a no-op; callers never see an error. Cached values are derived and
// reproducible, so last-write-wins races between requests are acceptable.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefixes tag the stored shape. A format change requires a prefix bump
// so old and new shapes never mix under one key.
const (
	TrendsPrefix  = "trends:"
	SummaryPrefix = "summary:"
)

type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get loads and decodes the entry under key into dest. Returns false on a
// real miss, on connectivity failure, and on malformed stored data alike.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("cache: get failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		slog.Warn("cache: malformed entry", "key", key, "error", err)
		return false
	}
	return true
}

// Set serializes value under key with the given TTL. Returns false instead
// of an error on any failure.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	b, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache: marshal failed", "key", key, "error", err)
		return false
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("cache: set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Invalidate removes key. No entry outlives its TTL regardless; this exists
// for operator tooling.
func (c *Cache) Invalidate(ctx context.Context, key string) bool {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache: invalidate failed", "key", key, "error", err)
		return false
	}
	return true
}
