package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "location:cache:"
	purgeBatchSize = 100
)

// CacheKey normalizes a city name so "London", " london " and "LONDON" share an entry.
func CacheKey(cityName string) string {
	return strings.ToLower(strings.TrimSpace(cityName))
}

// MemoryCache is a bounded in-process LRU whose entries expire after ttl.
// Slices are copied in and out so callers never share the cached array.
type MemoryCache struct {
	lru *expirable.LRU[string, []dto.LocationCandidate]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, []dto.LocationCandidate](size, nil, ttl),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]dto.LocationCandidate, bool, error) {
	candidates, ok := c.lru.Get(key)
	if !ok {
		metrics.ObserveCache("memory", "miss")
		return nil, false, nil
	}

	metrics.ObserveCache("memory", "hit")

	return slices.Clone(candidates), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, candidates []dto.LocationCandidate) error {
	if candidates == nil {
		candidates = []dto.LocationCandidate{}
	}

	c.lru.Add(key, slices.Clone(candidates))
	metrics.ObserveCache("memory", "set")

	return nil
}

func (c *MemoryCache) Purge(_ context.Context) error {
	c.lru.Purge()
	metrics.ObserveCache("memory", "purge")

	return nil
}

func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// RedisCache shares resolved locations across replicas.
type RedisCache struct {
	redis RedisClient
	ttl   time.Duration
}

func NewRedisCache(redis RedisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *RedisCache) GetCacheKey(key string) string {
	return cacheKeyPrefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]dto.LocationCandidate, bool, error) {
	data, err := c.redis.Get(ctx, c.GetCacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveCache("redis", "miss")
		return nil, false, nil
	}

	if err != nil {
		metrics.ObserveCache("redis", "error")
		return nil, false, fmt.Errorf("failed to get locations: %w", err)
	}

	var candidates []dto.LocationCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		metrics.ObserveCache("redis", "error")
		return nil, false, fmt.Errorf("failed to unmarshal locations: %w", err)
	}

	metrics.ObserveCache("redis", "hit")

	return candidates, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, candidates []dto.LocationCandidate) error {
	if candidates == nil {
		candidates = []dto.LocationCandidate{}
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}

	if err := c.redis.Set(ctx, c.GetCacheKey(key), data, c.ttl).Err(); err != nil {
		metrics.ObserveCache("redis", "error")
		return fmt.Errorf("failed to set locations: %w", err)
	}

	metrics.ObserveCache("redis", "set")

	return nil
}

// Purge removes every location entry, leaving other keys in the database alone.
func (c *RedisCache) Purge(ctx context.Context) error {
	var cursor uint64

	for {
		keys, next, err := c.redis.Scan(ctx, cursor, cacheKeyPrefix+"*", purgeBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan locations: %w", err)
		}

		if len(keys) > 0 {
			if err := c.redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete locations: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.ObserveCache("redis", "purge")

	return nil
}
