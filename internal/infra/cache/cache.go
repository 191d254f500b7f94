package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/youngpro718/nysc-facilities-sub003/internal/config"
)

func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

// QueryCache is a parameter-keyed read cache over redis. Writers never
// update cached entries in place; a mutation invalidates the whole key
// group and the next reader repopulates from the database.
type QueryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQueryCache(rdb *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{rdb: rdb, ttl: ttl}
}

func (c *QueryCache) key(group, params string) string {
	return fmt.Sprintf("qc:%s:%s", group, params)
}

// Get unmarshals the cached value for (group, params) into target.
// Returns false on miss or when redis is unavailable.
func (c *QueryCache) Get(ctx context.Context, group, params string, target interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, c.key(group, params)).Bytes()
	if err != nil {
		return false
	}
	return sonic.Unmarshal(raw, target) == nil
}

func (c *QueryCache) Set(ctx context.Context, group, params string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(group, params), raw, c.ttl).Err()
}

// Invalidate drops every cached entry in the group. Errors are ignored:
// a stale miss only costs one extra database read.
func (c *QueryCache) Invalidate(ctx context.Context, group string) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, c.key(group, "*"), 0).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}
