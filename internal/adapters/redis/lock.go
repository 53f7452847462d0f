package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"insight_engine/internal/adapters/observability"
	"insight_engine/internal/domain"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a single-instance Redis lock (SET NX PX) keyed per product.
// The TTL bounds how long a crashed holder can block others.
type Locker struct {
	rdb    *redis.Client
	prefix string
}

// NewLocker shares the cache's connection and key prefix.
func NewLocker(c *Cache) *Locker { return &Locker{rdb: c.rdb, prefix: c.prefix} }

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	token := uuid.NewString()
	key = l.prefix + key
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		observability.ObserveCache("lock", "contended")
		return nil, domain.ErrLocked
	}
	observability.ObserveCache("lock", "acquired")
	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}
	return release, nil
}
