package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kakasy/shareit/internal/config"
	"github.com/kakasy/shareit/internal/metrics"
	"github.com/kakasy/shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisSearchCache stores item search pages in Redis with a TTL bound on
// staleness. Search results are the only cached reads; booking queries always
// hit storage because their temporal classification must be fresh.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]*models.Item, bool, error) {
	if c.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		metrics.IncSearchCache("miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get search page from redis: %w", err)
	}

	var items []*models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal search page: %w", err)
	}

	metrics.IncSearchCache("hit")
	return items, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal search page: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set search page in redis: %w", err)
	}
	return nil
}
