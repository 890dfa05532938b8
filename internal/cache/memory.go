package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kakasy/shareit/internal/metrics"
	"github.com/kakasy/shareit/internal/models"
)

// MemorySearchCache is the in-process fallback used when Redis is down or not
// configured. Entries expire lazily on read.
type MemorySearchCache struct {
	entries sync.Map
	ttl     time.Duration
}

type memoryEntry struct {
	items     []*models.Item
	expiresAt time.Time
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{ttl: ttl}
}

func (c *MemorySearchCache) Get(ctx context.Context, key string) ([]*models.Item, bool, error) {
	val, ok := c.entries.Load(key)
	if !ok {
		metrics.IncSearchCache("miss")
		return nil, false, nil
	}

	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.entries.Delete(key)
		metrics.IncSearchCache("miss")
		return nil, false, nil
	}

	metrics.IncSearchCache("hit")
	return entry.items, true, nil
}

func (c *MemorySearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	c.entries.Store(key, memoryEntry{items: items, expiresAt: time.Now().Add(c.ttl)})
	return nil
}
