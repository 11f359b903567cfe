package redisclient

import (
	"trendlens/internal/config"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client from configuration. The underlying connection
// is established lazily on first use and pooled for the process lifetime.
func New(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
