package inmemory

import (
	"context"
	"sort"
	"sync"

	"microblog/internal/model"
	"microblog/internal/service"
)

type GroupStorage struct {
	mu     sync.RWMutex
	nextID int64
	groups map[int64]model.Group
	posts  *PostStorage
}

func NewGroupStorage() *GroupStorage {
	return &GroupStorage{
		nextID: 1,
		groups: make(map[int64]model.Group),
	}
}

// SetPostSource links the group storage to the post storage so a group
// delete can clear the group reference of its posts, mirroring the
// ON DELETE SET NULL rule of the relational schema.
func (s *GroupStorage) SetPostSource(src *PostStorage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = src
}

func (s *GroupStorage) CreateGroup(_ context.Context, in model.Group) (model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.Slug == in.Slug {
			return model.Group{}, service.ErrInvalidRequest
		}
	}

	in.ID = s.nextID
	s.nextID++
	s.groups[in.ID] = in
	return in, nil
}

func (s *GroupStorage) GetGroupByID(_ context.Context, groupID int64) (model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.groups[groupID]; ok {
		return g, nil
	}
	return model.Group{}, service.ErrNotFound
}

func (s *GroupStorage) GetGroupBySlug(_ context.Context, slug string) (model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return model.Group{}, service.ErrNotFound
}

func (s *GroupStorage) ListGroups(_ context.Context) ([]model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *GroupStorage) DeleteGroup(_ context.Context, groupID int64) error {
	s.mu.Lock()
	posts := s.posts
	if _, ok := s.groups[groupID]; !ok {
		s.mu.Unlock()
		return service.ErrNotFound
	}
	delete(s.groups, groupID)
	s.mu.Unlock()

	if posts != nil {
		posts.clearGroupRef(groupID)
	}
	return nil
}
