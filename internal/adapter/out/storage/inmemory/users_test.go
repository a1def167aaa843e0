package inmemory

import (
	"context"
	"testing"

	"microblog/internal/service"

	"github.com/stretchr/testify/require"
)

func TestUserStorage_Lookups(t *testing.T) {
	t.Parallel()

	s := NewUserStorage()
	ctx := context.Background()

	leo := s.SeedUser("leo")
	mia := s.SeedUser("mia")
	require.NotEqual(t, leo.ID, mia.ID)

	byID, err := s.GetUserByID(ctx, leo.ID)
	require.NoError(t, err)
	require.Equal(t, leo, byID)

	byName, err := s.GetUserByUsername(ctx, "mia")
	require.NoError(t, err)
	require.Equal(t, mia, byName)

	_, err = s.GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, service.ErrNotFound)
}
