// Package redis builds the shared Redis client for the caching layer.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis at the given address and verifies the
// connection with a ping before returning the client.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
