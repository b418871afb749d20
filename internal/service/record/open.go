package record

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zhouzirui/treat-or-hell/backend/internal/config"
)

// OpenBackend builds the backend selected by cfg.Driver.
func OpenBackend(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	switch cfg.Driver {
	case config.StoreDriverFile, "":
		return NewFileBackend(cfg.Path), nil
	case config.StoreDriverSQLite:
		return NewSQLiteBackend(ctx, cfg.SQLitePath)
	case config.StoreDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisBackend(client, cfg.Redis.Key), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
