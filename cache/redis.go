package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache implements Cache on a Redis client. It tracks its own health:
// any operation failure flips the layer into a degraded mode where gets miss
// and writes are no-ops, until a later successful round-trip restores it.
// Callers never block on, or fail because of, a down cache.
type RedisCache struct {
	client  *redis.Client
	logger  *zap.Logger
	healthy atomic.Bool
}

// NewRedisCache creates a Redis-backed cache layer. The layer starts healthy.
func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	c := &RedisCache{client: client, logger: logger}
	c.healthy.Store(true)
	return c
}

// Healthy reports whether the layer is in normal mode.
func (c *RedisCache) Healthy() bool {
	return c.healthy.Load()
}

// available checks whether the layer may talk to Redis. In degraded mode a
// cheap ping is attempted first; a successful ping restores normal mode.
func (c *RedisCache) available(ctx context.Context) bool {
	if c.healthy.Load() {
		return true
	}
	pingCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.client.Ping(pingCtx).Err(); err != nil {
		return false
	}
	c.markHealthy()
	return true
}

func (c *RedisCache) markHealthy() {
	if !c.healthy.Swap(true) {
		c.logger.Info("cache restored, leaving degraded mode")
	}
}

func (c *RedisCache) markDegraded(op string, err error) {
	if c.healthy.Swap(false) {
		c.logger.Warn("cache degraded, operating in pass-through mode",
			zap.String("op", op), zap.Error(err))
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.available(ctx) {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.markHealthy()
		return nil, false
	}
	if err != nil {
		c.markDegraded("get", err)
		return nil, false
	}
	c.markHealthy()
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !c.available(ctx) {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.markDegraded("set", err)
		return
	}
	c.markHealthy()
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if !c.available(ctx) {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.markDegraded("del", err)
		return
	}
	c.markHealthy()
}

// DeleteByPattern walks keys matching prefix* with SCAN and deletes them in
// batches. KEYS is avoided so invalidation never stalls the server.
func (c *RedisCache) DeleteByPattern(ctx context.Context, prefix string) {
	if !c.available(ctx) {
		return
	}
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			c.markDegraded("scan", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.markDegraded("del", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.markHealthy()
}
