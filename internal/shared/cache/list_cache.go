// Package cache keeps whole reference lists in Redis. Reads that miss are
// collapsed with singleflight; writes invalidate the key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Minute

type ListCache[T any] struct {
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewList returns a cache for key. A nil client disables caching.
func NewList[T any](rdb *redis.Client, key string, ttl time.Duration, logger *zap.Logger) *ListCache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.L()
	}
	return &ListCache[T]{
		rdb:    rdb,
		key:    key,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		logger: logger,
	}
}

// Get returns the cached list, or calls load and stores its result.
func (c *ListCache[T]) Get(ctx context.Context, load func(ctx context.Context) ([]T, error)) ([]T, error) {
	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, c.key).Result()
		switch {
		case err == nil:
			var items []T
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
			c.logger.Warn("cache entry unreadable", zap.String("key", c.key))
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("cache read failed", zap.String("key", c.key), zap.Error(err))
		}
	}

	v, err, _ := c.sf.Do(c.key, func() (interface{}, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.rdb != nil {
			if data, err := json.Marshal(items); err == nil {
				if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
					c.logger.Warn("cache write failed", zap.String("key", c.key), zap.Error(err))
				}
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]T), nil
}

// Invalidate drops the cached list. Failures are logged, not returned: the
// entry expires on its own.
func (c *ListCache[T]) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.logger.Error("failed to invalidate cache", zap.String("key", c.key), zap.Error(err))
	}
}
