package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache stores computed availability responses per branch.
// Invalidate drops every entry of a branch at once.
//
// Get returns the branch version it looked under; Set must be given that
// version so an answer computed across an Invalidate is filed under the
// retired version and never served.
type AvailabilityCache interface {
	Get(ctx context.Context, branchID uint, key string, dst any) (version int64, hit bool, err error)
	Set(ctx context.Context, branchID uint, version int64, key string, value any) error
	Invalidate(ctx context.Context, branchID uint) error
}

const keyPrefix = "availability:"

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func versionKey(branchID uint) string {
	return fmt.Sprintf("%sbranch:%d:version", keyPrefix, branchID)
}

func entryKey(branchID uint, version int64, key string) string {
	return fmt.Sprintf("%sbranch:%d:v%d:%s", keyPrefix, branchID, version, key)
}

// version is bumped on every write; stale entries are never read again and
// expire on their own TTL.
func (c *RedisAvailabilityCache) version(ctx context.Context, branchID uint) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(branchID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, branchID uint, key string, dst any) (int64, bool, error) {
	v, err := c.version(ctx, branchID)
	if err != nil {
		return 0, false, err
	}

	data, err := c.client.Get(ctx, entryKey(branchID, v, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Set files value under version, the one Get returned before the answer was
// computed, never the current one.
func (c *RedisAvailabilityCache) Set(ctx context.Context, branchID uint, version int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entryKey(branchID, version, key), data, c.ttl).Err()
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, branchID uint) error {
	return c.client.Incr(ctx, versionKey(branchID)).Err()
}

// Nop never hits. Used when no redis is configured or the TTL is zero.
type Nop struct{}

func (Nop) Get(context.Context, uint, string, any) (int64, bool, error) { return 0, false, nil }
func (Nop) Set(context.Context, uint, int64, string, any) error         { return nil }
func (Nop) Invalidate(context.Context, uint) error                      { return nil }

// New picks the redis cache when addr is set and ttl is positive.
func New(addr, password string, db int, ttl time.Duration) (AvailabilityCache, *redis.Client) {
	if addr == "" || ttl <= 0 {
		return Nop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisAvailabilityCache(client, ttl), client
}
