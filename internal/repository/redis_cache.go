package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	customError "github.com/segyhp/fincalc-engine/pkg/errors"
)

const keyPrefix = "fincalc:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) ScheduleCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, customError.ErrCacheMiss
	}
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

type noopCache struct{}

// NewNoopCache returns a cache that never holds anything. It is used when Redis is
// not configured.
func NewNoopCache() ScheduleCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) ([]byte, error) {
	return nil, customError.ErrCacheMiss
}

func (noopCache) Set(context.Context, string, []byte) error {
	return nil
}

func (noopCache) Ping(context.Context) error {
	return nil
}
