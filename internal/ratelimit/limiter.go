// Package ratelimit counts attempts per key in a sliding window kept in a
// Redis sorted set.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "order_attempts:"

type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Unlimited allows everything. It stands in when no Redis is configured.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true, Remaining: -1}, nil
}

type slidingWindow struct {
	client *redis.Client
	max    int64
	window time.Duration
	now    func() time.Time
}

func New(client *redis.Client, cfg *config.RateConfig) Limiter {
	if client == nil {
		return Unlimited{}
	}

	return NewSlidingWindow(client, cfg, time.Now)
}

func NewSlidingWindow(client *redis.Client, cfg *config.RateConfig, now func() time.Time) Limiter {
	return &slidingWindow{client: client, max: cfg.MaxAttempts, window: cfg.WindowSize, now: now}
}

// Allow records an attempt for key and reports whether it fits in the window.
// Denied attempts are recorded too, so hammering keeps the window full.
func (l *slidingWindow) Allow(ctx context.Context, key string) (Decision, error) {

	key = keyPrefix + key

	now := l.now()
	windowStart := now.Add(-l.window).UnixMilli()

	pipe := l.client.Pipeline()

	// drop attempts that fell out of the window
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	if attempts <= l.max {
		return Decision{Allowed: true, Remaining: l.max - attempts}, nil
	}

	scores, err := l.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
	if err != nil {
		return Decision{RetryAfter: l.window}, fmt.Errorf("failed to get oldest attempt time: %w", err)
	}
	if len(scores) == 0 {
		return Decision{RetryAfter: l.window}, nil
	}

	oldest := time.UnixMilli(int64(scores[0].Score))
	retryAfter := max(oldest.Add(l.window).Sub(now), 0)

	return Decision{Allowed: false, RetryAfter: retryAfter}, nil
}
