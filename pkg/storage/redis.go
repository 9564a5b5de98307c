package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores the document under a single Redis key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis medium storing the document at key
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{
		client: client,
		key:    key,
	}
}

// Describe implements Medium
func (r *Redis) Describe() string {
	return "redis:" + r.key
}

// Read implements Medium
func (r *Redis) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, r.key)
		}

		return nil, fmt.Errorf("failed to get %s: %w", r.key, err)
	}

	return data, nil
}

// Write implements Medium
func (r *Redis) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", r.key, err)
	}

	return nil
}

// Close releases the Redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
