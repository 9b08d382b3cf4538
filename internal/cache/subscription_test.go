package cache

import (
	"testing"
	"time"

	"AJY_Stylist/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNilCacheIsAlwaysMiss(t *testing.T) {
	var c *SubscriptionCache

	c.Set(t.Context(), "user@example.com", true)
	active, ok := c.Get(t.Context(), "user@example.com")
	assert.False(t, ok)
	assert.False(t, active)
	c.Invalidate(t.Context(), "user@example.com")
	assert.NoError(t, c.Close())
}

func TestNewWithoutAddr(t *testing.T) {
	c, err := New(t.Context(), config.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestUnreachableRedisDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewWithClient(client, time.Minute, zap.NewNop())
	defer c.Close()

	c.Set(t.Context(), "user@example.com", true)
	_, ok := c.Get(t.Context(), "user@example.com")
	assert.False(t, ok)
}

func TestKeyUsesEmailHash(t *testing.T) {
	assert.Equal(t, key("User@Example.com"), key("user@example.com"))
	assert.NotContains(t, key("user@example.com"), "example.com")
	assert.Contains(t, key("user@example.com"), keyPrefix)
}
