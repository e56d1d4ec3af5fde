package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewRedisStore bounds every command by opTimeout; zero leaves commands to
// the caller's context.
func NewRedisStore(client *redis.Client, opTimeout time.Duration) Store {
	return &redisStore{client: client, opTimeout: opTimeout}
}

func (r *redisStore) Get(ctx context.Context, key string, dest any) (bool, error) {

	ctx, cancel := utils.Bounded(ctx, r.opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {

		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)

	}

	return decode(ctx, key, data, dest), nil
}

// Set writes without expiry; persisted state lives until removed.
func (r *redisStore) Set(ctx context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	ctx, cancel := utils.Bounded(ctx, r.opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil

}

func (r *redisStore) Remove(ctx context.Context, key string) error {

	ctx, cancel := utils.Bounded(ctx, r.opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil

}

func (r *redisStore) Close() error {
	return r.client.Close()
}
