package inmemory

import (
	"context"
	"sync"

	"microblog/internal/model"
)

type FollowStorage struct {
	mu    sync.RWMutex
	edges map[model.Follow]struct{}
}

func NewFollowStorage() *FollowStorage {
	return &FollowStorage{
		edges: make(map[model.Follow]struct{}),
	}
}

func (s *FollowStorage) CreateFollow(_ context.Context, follow model.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// duplicate insert is a no-op, matching the unique constraint
	s.edges[follow] = struct{}{}
	return nil
}

func (s *FollowStorage) DeleteFollow(_ context.Context, follow model.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges, follow)
	return nil
}

func (s *FollowStorage) FollowExists(_ context.Context, follow model.Follow) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[follow]
	return ok, nil
}

func (s *FollowStorage) followedAuthors(userID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []int64
	for edge := range s.edges {
		if edge.UserID == userID {
			out = append(out, edge.AuthorID)
		}
	}
	return out
}
