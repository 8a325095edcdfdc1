package cache_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"stayhub/cache"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKey(t *testing.T) {
	t.Run("order independence", func(t *testing.T) {
		first := map[string]interface{}{"b": 2, "a": 1}
		second := map[string]interface{}{"a": 1, "b": 2}
		assert.Equal(t, cache.Key("hotel:search", first), cache.Key("hotel:search", second))
	})

	t.Run("distinct params give distinct keys", func(t *testing.T) {
		one := cache.Key("hotel:search", map[string]interface{}{"page": 1})
		two := cache.Key("hotel:search", map[string]interface{}{"page": 2})
		assert.NotEqual(t, one, two)
	})

	t.Run("prefix is preserved", func(t *testing.T) {
		key := cache.Key("hotel:search", map[string]interface{}{"page": 1})
		assert.True(t, strings.HasPrefix(key, "hotel:search:"))
	})
}

func TestHotelKey(t *testing.T) {
	assert.Equal(t, "hotel:h1:true", cache.HotelKey("h1", true))
	assert.Equal(t, "hotel:h1:false", cache.HotelKey("h1", false))
}

type recordingCache struct {
	deleted []string
}

func (c *recordingCache) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (c *recordingCache) Set(context.Context, string, []byte, time.Duration) {}
func (c *recordingCache) Delete(context.Context, string)                     {}
func (c *recordingCache) DeleteByPattern(_ context.Context, prefix string) {
	c.deleted = append(c.deleted, prefix)
}

func TestInvalidateHotel(t *testing.T) {
	t.Run("clears entity and listing namespaces", func(t *testing.T) {
		rec := &recordingCache{}
		cache.InvalidateHotel(context.Background(), rec, "h1")
		assert.Equal(t, []string{"hotel:h1", "hotel:search:", "hotel:latest:"}, rec.deleted)
	})

	t.Run("without hotel id clears only listings", func(t *testing.T) {
		rec := &recordingCache{}
		cache.InvalidateHotel(context.Background(), rec, "")
		assert.Equal(t, []string{"hotel:search:", "hotel:latest:"}, rec.deleted)
	})
}

// unreachableClient returns a client whose operations fail fast.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisCacheDegradedMode(t *testing.T) {
	ctx := context.Background()
	c := cache.NewRedisCache(unreachableClient(), zap.NewNop())

	require.True(t, c.Healthy(), "layer starts in normal mode")

	// First failure flips the layer into degraded mode and surfaces a miss,
	// never an error.
	_, hit := c.Get(ctx, "hotel:h1:false")
	assert.False(t, hit)
	assert.False(t, c.Healthy())

	// Degraded writes and invalidations are silent no-ops.
	c.Set(ctx, "hotel:h1:false", []byte("v"), time.Minute)
	c.Delete(ctx, "hotel:h1:false")
	c.DeleteByPattern(ctx, "hotel:search:")
	assert.False(t, c.Healthy())

	_, hit = c.Get(ctx, "hotel:h1:false")
	assert.False(t, hit)
}
