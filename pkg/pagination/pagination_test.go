package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageRequest_Normalize(t *testing.T) {
	t.Parallel()

	req := PageRequest{Page: 0, Size: 0}.Normalize(10)
	require.Equal(t, PageRequest{Page: 1, Size: 10}, req)

	req = PageRequest{Page: -3, Size: 5}.Normalize(10)
	require.Equal(t, PageRequest{Page: 1, Size: 5}, req)

	req = PageRequest{Page: 2, Size: 10}.Normalize(10)
	require.Equal(t, PageRequest{Page: 2, Size: 10}, req)
}

func TestPageRequest_Offset(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, PageRequest{Page: 1, Size: 10}.Offset())
	require.Equal(t, 10, PageRequest{Page: 2, Size: 10}.Offset())
	require.Equal(t, 40, PageRequest{Page: 5, Size: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		items   []int
		req     PageRequest
		count   int
		hasNext bool
		hasPrev bool
	}{
		{
			name:  "empty",
			items: nil,
			req:   PageRequest{Page: 1, Size: 10},
			count: 0,
		},
		{
			name:  "partial page",
			items: []int{1, 2, 3},
			req:   PageRequest{Page: 1, Size: 10},
			count: 3,
		},
		{
			name:    "peeked item trimmed and flags next",
			items:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
			req:     PageRequest{Page: 1, Size: 10},
			count:   10,
			hasNext: true,
		},
		{
			name:    "second page flags previous",
			items:   []int{1, 2, 3, 4, 5},
			req:     PageRequest{Page: 2, Size: 10},
			count:   5,
			hasPrev: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := NewPage(tt.items, tt.req)
			require.Equal(t, tt.count, page.Count)
			require.Len(t, page.Items, tt.count)
			require.Equal(t, tt.hasNext, page.HasNext)
			require.Equal(t, tt.hasPrev, page.HasPrevious)
			require.Equal(t, tt.req.Page, page.Number)
			require.Equal(t, tt.req.Size, page.Size)
		})
	}
}
