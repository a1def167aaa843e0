package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"microblog/internal/model"
	"microblog/pkg/pagination"

	"github.com/redis/go-redis/v9"
)

const feedKeyPattern = "feed:index:page:*"

func feedKey(page int) string {
	return fmt.Sprintf("feed:index:page:%d", page)
}

// FeedCache keeps JSON-marshalled feed pages in Redis under a fixed
// TTL. A cache read may be stale for up to the TTL window.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *FeedCache) GetFeedPage(ctx context.Context, page int) (pagination.Page[model.Post], bool, error) {
	var out pagination.Page[model.Post]

	value, err := c.rdb.Get(ctx, feedKey(page)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return out, false, nil
		}
		return out, false, fmt.Errorf("redis get: %w", err)
	}

	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return out, false, fmt.Errorf("unmarshal cached page: %w", err)
	}
	return out, true, nil
}

func (c *FeedCache) SetFeedPage(ctx context.Context, page int, p pagination.Page[model.Post]) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	if err := c.rdb.Set(ctx, feedKey(page), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops every cached feed page so the next read hits
// storage.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	keys, err := c.rdb.Keys(ctx, feedKeyPattern).Result()
	if err != nil {
		return fmt.Errorf("redis keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
