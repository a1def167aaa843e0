package inmemory

import (
	"context"
	"testing"
	"time"

	"microblog/internal/model"
	"microblog/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func somePage(text string) pagination.Page[model.Post] {
	return pagination.Page[model.Post]{
		Items:  []model.Post{{ID: 1, Text: text, AuthorID: 1}},
		Number: 1,
		Size:   10,
		Count:  1,
	}
}

func TestFeedCache_ServesWithinTTL(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cache := NewFeedCache(20 * time.Second).WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.SetFeedPage(ctx, 1, somePage("hello")))

	// still served one second before expiry, even if storage changed
	now = base.Add(19 * time.Second)
	got, ok, err := cache.GetFeedPage(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello", got.Items[0].Text)
}

func TestFeedCache_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cache := NewFeedCache(20 * time.Second).WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.SetFeedPage(ctx, 1, somePage("hello")))

	now = base.Add(21 * time.Second)
	_, ok, err := cache.GetFeedPage(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFeedCache_PagesAreIndependent(t *testing.T) {
	t.Parallel()

	cache := NewFeedCache(20 * time.Second)
	ctx := context.Background()

	require.NoError(t, cache.SetFeedPage(ctx, 2, somePage("second")))

	_, ok, err := cache.GetFeedPage(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	got, ok, err := cache.GetFeedPage(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", got.Items[0].Text)
}

func TestFeedCache_Invalidate(t *testing.T) {
	t.Parallel()

	cache := NewFeedCache(20 * time.Second)
	ctx := context.Background()

	require.NoError(t, cache.SetFeedPage(ctx, 1, somePage("hello")))
	require.NoError(t, cache.SetFeedPage(ctx, 2, somePage("world")))
	require.NoError(t, cache.Invalidate(ctx))

	for _, page := range []int{1, 2} {
		_, ok, err := cache.GetFeedPage(ctx, page)
		require.NoError(t, err)
		require.False(t, ok)
	}
}
