package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bricsbtc/pkg/logger"
)

// NewRedis creates a Redis client from a connection URL and verifies it
// with a ping. Redis backs session revocation and the market ticker cache.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().Msg("redis connected")
	return client, nil
}
