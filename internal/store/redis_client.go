package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s", cfg.Username, cfg.Addr())))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil

}

// New builds the backend selected by cfg.Storage.Driver. The Redis client is
// returned for other Redis users and is nil for the memory driver.
func New(cfg *config.Config) (Store, *redis.Client, error) {

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		client, err := NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Storage.OpTimeout), client, nil
	case config.StorageDriverMemory:
		slog.Warn("Using in-memory storage; state is lost on restart")
		return NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
