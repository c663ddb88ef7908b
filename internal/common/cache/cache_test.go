package cache

import (
	"context"
	"testing"
	"time"

	"activity-finder/internal/common/config"
	"activity-finder/internal/common/database"
	"activity-finder/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, logger.NewNoOpLogger()), mr
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Count int    `json:"count"`
		Sort  string `json:"sort"`
	}

	c.Set(ctx, "search:abc", payload{Count: 12, Sort: "title__ASC"}, time.Minute)

	var got payload
	ok := c.Get(ctx, "search:abc", &got)
	assert.True(t, ok)
	assert.Equal(t, 12, got.Count)
	assert.Equal(t, "title__ASC", got.Sort)
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got map[string]interface{}
	assert.False(t, c.Get(context.Background(), "missing", &got))
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "short", "value", 300*time.Second)

	var got string
	require.True(t, c.Get(ctx, "short", &got))

	mr.FastForward(301 * time.Second)

	assert.False(t, c.Get(ctx, "short", &got))
}

func TestCache_InvalidateTag(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Hour, "finder:default")
	c.Set(ctx, "b", 2, time.Hour, "finder:default")
	c.Set(ctx, "c", 3, time.Hour, "other")

	require.NoError(t, c.InvalidateTag(ctx, "finder:default"))

	var got int
	assert.False(t, c.Get(ctx, "a", &got))
	assert.False(t, c.Get(ctx, "b", &got))
	assert.True(t, c.Get(ctx, "c", &got))
	assert.Equal(t, 3, got)
}

func TestCache_RedisDownIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Hour)
	mr.Close()

	var got int
	assert.False(t, c.Get(ctx, "a", &got))
}
