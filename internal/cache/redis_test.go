package cache

import (
	"context"
	"testing"
	"time"

	"github.com/kakasy/shareit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSearchCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	cache := NewRedisSearchCache(client, time.Minute)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		items := []*models.Item{{ID: 5, Name: "Drill", Available: true}}

		err := cache.Set(ctx, "item_search:drill:0:10", items)
		require.NoError(t, err)

		got, ok, err := cache.Get(ctx, "item_search:drill:0:10")
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, int64(5), got[0].ID)
		assert.Equal(t, "Drill", got[0].Name)
	})

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "item_search:missing:0:10")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Expiry", func(t *testing.T) {
		err := cache.Set(ctx, "item_search:short:0:10", []*models.Item{{ID: 1}})
		require.NoError(t, err)

		s.FastForward(time.Minute + time.Second)

		_, ok, err := cache.Get(ctx, "item_search:short:0:10")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilCache := NewRedisSearchCache(nil, time.Minute)
		_, _, err := nilCache.Get(ctx, "any")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})
}
