package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is used when no key is configured.
const DefaultRedisKey = "treatorhell:behavior_record"

// RedisBackend keeps the record under a single Redis key without expiry.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

func (b *RedisBackend) Read(ctx context.Context) (string, error) {
	content, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", b.key, err)
	}
	return content, nil
}

func (b *RedisBackend) Write(ctx context.Context, content string) error {
	if err := b.client.Set(ctx, b.key, content, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
