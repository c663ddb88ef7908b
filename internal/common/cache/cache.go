// internal/common/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"activity-finder/internal/common/database"
	"activity-finder/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a time-boxed key/value store with tag based invalidation on top of
// Redis. The cache is advisory: every error on the Redis side is logged and
// treated as a miss, callers must always be able to recompute.
type Cache struct {
	redis  *database.RedisClient
	logger logger.Logger
}

func New(rdb *database.RedisClient, log logger.Logger) *Cache {
	return &Cache{
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"component": "cache"}),
	}
}

// Get unmarshals the cached JSON value for key into dest. Returns false on a
// miss or any Redis/unmarshal error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed, treating as miss", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("cache entry unmarshal failed, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	return true
}

// Set stores value as JSON under key with the given TTL and registers key in
// each tag set so InvalidateTag can find it later.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration, tags ...string) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("cache value marshal failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := c.redis.Set(ctx, key, string(raw), ttl); err != nil {
		c.logger.Warn("cache set failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	for _, tag := range tags {
		if err := c.redis.Client.SAdd(ctx, tagSetKey(tag), key).Err(); err != nil {
			c.logger.Warn("cache tag registration failed", map[string]interface{}{
				"key":   key,
				"tag":   tag,
				"error": err.Error(),
			})
		}
	}
}

// InvalidateTag deletes every cache entry registered under tag along with the
// tag set itself.
func (c *Cache) InvalidateTag(ctx context.Context, tag string) error {
	setKey := tagSetKey(tag)

	members, err := c.redis.Client.SMembers(ctx, setKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	keys := append(members, setKey)
	if err := c.redis.Del(ctx, keys...); err != nil {
		return err
	}

	c.logger.Info("cache tag invalidated", map[string]interface{}{
		"tag":  tag,
		"keys": len(members),
	})
	return nil
}

func tagSetKey(tag string) string {
	return "cache_tag:" + tag
}
