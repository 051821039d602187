package kv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"shiftpay/internal/platform/config"
	"shiftpay/internal/platform/db"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

const redisPrefix = "shiftpay:"

// Backend is a key-value substrate that owns its connection.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.StoreDriver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.StorePath)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.StorePath)
	case DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return NewPostgres(pool), nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		slog.Info("connected to redis", "addr", cfg.RedisAddr)
		return NewRedis(client, redisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
