package inmemory

import (
	"context"
	"sync"

	"microblog/internal/model"
	"microblog/internal/service"
)

type UserStorage struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]model.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		nextID: 1,
		users:  make(map[int64]model.User),
	}
}

// SeedUser registers a user. User management is external; this exists
// for the in-memory mode and tests.
func (s *UserStorage) SeedUser(username string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{ID: s.nextID, Username: username}
	s.nextID++
	s.users[u.ID] = u
	return u
}

func (s *UserStorage) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return model.User{}, service.ErrNotFound
}

func (s *UserStorage) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, service.ErrNotFound
}
