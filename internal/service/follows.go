package service

import (
	"context"

	"microblog/internal/auth"
	"microblog/internal/model"
)

//go:generate mockgen -source=follows.go -destination=./follow_storage_mock.go -package=service microblog/internal/service FollowStorage
type FollowStorage interface {
	// CreateFollow is idempotent: inserting an existing edge is a no-op.
	CreateFollow(ctx context.Context, follow model.Follow) error
	// DeleteFollow is a no-op when the edge does not exist.
	DeleteFollow(ctx context.Context, follow model.Follow) error
	FollowExists(ctx context.Context, follow model.Follow) (bool, error)
}

type FollowService struct {
	followStorage FollowStorage
	userStorage   UserStorage
}

func NewFollowService(followStorage FollowStorage, userStorage UserStorage) *FollowService {
	return &FollowService{
		followStorage: followStorage,
		userStorage:   userStorage,
	}
}

// Follow creates a follow edge from the actor to the named author.
// Self-follow and an already existing edge are silently ignored.
func (s *FollowService) Follow(ctx context.Context, actor auth.Context, username string) error {
	if !actor.Authenticated {
		return ErrUnauthenticated
	}

	author, err := s.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == actor.UserID {
		return nil
	}

	return s.followStorage.CreateFollow(ctx, model.Follow{
		UserID:   actor.UserID,
		AuthorID: author.ID,
	})
}

// Unfollow removes the follow edge if present; no-op otherwise.
func (s *FollowService) Unfollow(ctx context.Context, actor auth.Context, username string) error {
	if !actor.Authenticated {
		return ErrUnauthenticated
	}

	author, err := s.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.followStorage.DeleteFollow(ctx, model.Follow{
		UserID:   actor.UserID,
		AuthorID: author.ID,
	})
}
