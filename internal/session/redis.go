package session

import (
	"context"

	"github.com/redis/go-redis/v9"

	"pixelgram/backend/internal/config"
)

// NewRedis returns a configured go-redis client.
func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// Ping ensures the redis connection is healthy.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
