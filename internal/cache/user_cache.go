package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList   = "users:list"
	keySearch = "users:search:"
)

// UserCache caches directory list and search results in Redis.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserCache returns a new UserCache.
func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

// GetList returns cached list or nil if miss.
func (c *UserCache) GetList(ctx context.Context) ([]dom.User, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.User
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list in cache.
func (c *UserCache) SetList(ctx context.Context, list []dom.User) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// GetSearch returns cached search result for query q, or nil if miss.
func (c *UserCache) GetSearch(ctx context.Context, q string) ([]dom.User, error) {
	key := keySearch + normalizeQuery(q)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.User
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetSearch stores the search result in cache.
func (c *UserCache) SetSearch(ctx context.Context, q string, list []dom.User) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	key := keySearch + normalizeQuery(q)
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// InvalidateAll removes the list key and all search keys (cache invalidation on write).
func (c *UserCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyList).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keySearch+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
