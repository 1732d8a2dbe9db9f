package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps fetched documents by cid. Content is immutable, so entries never go stale.
type Cache interface {
	// Get returns the cached bytes and whether they were found.
	Get(ctx context.Context, cid string) ([]byte, bool, error)
	// Set stores data under cid.
	Set(ctx context.Context, cid string, data []byte) error
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache wraps client. A zero ttl keeps entries forever.
func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisClient accepts a redis:// URL or a plain host:port.
func NewRedisClient(addr string) (*redis.Client, error) {
	if !strings.Contains(addr, "://") {
		return redis.NewClient(&redis.Options{Addr: addr}), nil
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Get returns the cached document for cid. A miss is reported with ok false and no error.
func (c *RedisCache) Get(ctx context.Context, cid string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+cid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", cid, err)
	}
	return data, true, nil
}

// Set caches the document for cid with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, cid string, data []byte) error {
	if err := c.client.Set(ctx, c.prefix+cid, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", cid, err)
	}
	return nil
}
