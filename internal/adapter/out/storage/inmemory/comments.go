package inmemory

import (
	"context"
	"sync"
	"time"

	"microblog/internal/model"
)

type CommentStorage struct {
	mu       sync.RWMutex
	nextID   int64
	comments map[int64][]model.Comment // keyed by post ID, insertion order
}

func NewCommentStorage() *CommentStorage {
	return &CommentStorage{
		nextID:   1,
		comments: make(map[int64][]model.Comment),
	}
}

func (s *CommentStorage) CreateComment(_ context.Context, in model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = s.nextID
	s.nextID++
	if in.Created.IsZero() {
		in.Created = time.Now()
	}
	s.comments[in.PostID] = append(s.comments[in.PostID], in)
	return in, nil
}

func (s *CommentStorage) GetCommentsByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.comments[postID]
	if len(stored) == 0 {
		return nil, nil
	}

	// newest-first
	out := make([]model.Comment, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}
