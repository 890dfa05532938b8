package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kakasy/shareit/internal/domain"
	"github.com/kakasy/shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSearchCache prefers the primary cache and falls back to the
// secondary when the primary errors. The primary is retried after a cooldown.
type FailoverSearchCache struct {
	primary   domain.SearchCache
	fallback  domain.SearchCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	downSince atomic.Int64
}

const retryCooldown = time.Minute

func NewFailoverSearchCache(primary, fallback domain.SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverSearchCache) Get(ctx context.Context, key string) ([]*models.Item, bool, error) {
	if c.usePrimary() {
		items, ok, err := c.primary.Get(ctx, key)
		if err == nil {
			return items, ok, nil
		}
		c.markDown(err)
	}
	return c.fallback.Get(ctx, key)
}

func (c *FailoverSearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	if c.usePrimary() {
		err := c.primary.Set(ctx, key, items)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}
	return c.fallback.Set(ctx, key, items)
}

func (c *FailoverSearchCache) usePrimary() bool {
	if !c.isDown.Load() {
		return true
	}
	// Retry the primary after the cooldown.
	if time.Since(time.Unix(0, c.downSince.Load())) > retryCooldown {
		c.isDown.Store(false)
		return true
	}
	return false
}

func (c *FailoverSearchCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary search cache failed, falling back to memory")
	c.isDown.Store(true)
	c.downSince.Store(time.Now().UnixNano())
}
