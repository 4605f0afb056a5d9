package amadeus

import (
	"context"
	"fmt"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter throttles outbound calls. Allow returns ErrRateLimitExceeded when the
// call must not be made.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

// RedisLimiter shares one budget across every replica of the service.
type RedisLimiter struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
}

func NewRedisLimiter(rdb *redis.Client, rps int) *RedisLimiter {
	return &RedisLimiter{
		limiter: redis_rate.NewLimiter(rdb),
		limit:   redis_rate.PerSecond(rps),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	res, err := l.limiter.Allow(ctx, fmt.Sprintf("limit:%s", key), l.limit)
	if err != nil {
		return fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return ErrRateLimitExceeded
	}

	return nil
}

// LocalLimiter is used when no redis is configured. It waits for a token
// instead of rejecting.
type LocalLimiter struct {
	limiter *rate.Limiter
}

func NewLocalLimiter(rps int) *LocalLimiter {
	return &LocalLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, _ string) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return ErrRateLimitExceeded.WithCause(err)
	}

	return nil
}
