package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"insight_engine/internal/adapters/observability"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key, so one Redis can serve several deployments.
	Prefix string
}

// Cache stores JSON-encoded snapshots with a TTL.
type Cache struct {
	rdb    *redis.Client
	prefix string
}

func New(o Options) *Cache {
	return &Cache{
		rdb:    redis.NewClient(&redis.Options{Addr: o.Addr, Password: o.Password, DB: o.DB}),
		prefix: o.Prefix,
	}
}

func (c *Cache) key(k string) string { return c.prefix + k }

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		observability.ObserveCache("snapshot", "miss")
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// an undecodable entry counts as a miss and is dropped
		observability.ObserveCache("snapshot", "corrupt")
		_ = c.rdb.Del(ctx, c.key(key)).Err()
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	observability.ObserveCache("snapshot", "hit")
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), raw, time.Duration(ttlSec)*time.Second).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	observability.ObserveCache("snapshot", "set")
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("snapshot", "del")
	return c.rdb.Del(ctx, c.key(key)).Err()
}

func (c *Cache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.rdb.Close() }
