package inmemory

import (
	"context"
	"sync"
	"time"

	"microblog/internal/model"
	"microblog/pkg/pagination"
)

type entry struct {
	page      pagination.Page[model.Post]
	expiresAt time.Time
}

// FeedCache is the in-process variant of the Redis feed cache, used in
// the default storage mode and in tests.
type FeedCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int]entry
	now     func() time.Time
}

func NewFeedCache(ttl time.Duration) *FeedCache {
	return &FeedCache{
		ttl:     ttl,
		entries: make(map[int]entry),
		now:     time.Now,
	}
}

// WithClock overrides the time source; tests use it to step through
// the TTL window without sleeping.
func (c *FeedCache) WithClock(now func() time.Time) *FeedCache {
	c.now = now
	return c
}

func (c *FeedCache) GetFeedPage(_ context.Context, page int) (pagination.Page[model.Post], bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[page]
	if !ok || c.now().After(e.expiresAt) {
		return pagination.Page[model.Post]{}, false, nil
	}
	return e.page, true, nil
}

func (c *FeedCache) SetFeedPage(_ context.Context, page int, p pagination.Page[model.Post]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[page] = entry{
		page:      p,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

func (c *FeedCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int]entry)
	return nil
}
