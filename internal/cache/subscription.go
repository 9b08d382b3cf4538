// Package cache holds short-lived subscription state in Redis so repeated
// page loads do not hit the Polar API every time.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/storage"
)

const keyPrefix = "subscription:"

// SubscriptionCache nil 이면 항상 캐시 미스
type SubscriptionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New Addr 설정이 없으면 nil 반환
func New(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*SubscriptionCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewWithClient(client, cfg.TTL, logger), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SubscriptionCache {
	return &SubscriptionCache{client: client, ttl: ttl, logger: logger}
}

func key(email string) string {
	return keyPrefix + storage.EmailHash(email)
}

// Get 캐시된 구독 여부, 두 번째 값은 캐시 적중 여부
func (c *SubscriptionCache) Get(ctx context.Context, email string) (bool, bool) {
	if c == nil {
		return false, false
	}
	val, err := c.client.Get(ctx, key(email)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("SubscriptionCache.Get(): redis error", zap.Error(err))
		}
		return false, false
	}
	return val == "1", true
}

func (c *SubscriptionCache) Set(ctx context.Context, email string, active bool) {
	if c == nil {
		return
	}
	val := "0"
	if active {
		val = "1"
	}
	if err := c.client.Set(ctx, key(email), val, c.ttl).Err(); err != nil {
		c.logger.Warn("SubscriptionCache.Set(): redis error", zap.Error(err))
	}
}

// Invalidate 구독 해지 후 호출
func (c *SubscriptionCache) Invalidate(ctx context.Context, email string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key(email)).Err(); err != nil {
		c.logger.Warn("SubscriptionCache.Invalidate(): redis error", zap.Error(err))
	}
}

func (c *SubscriptionCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
