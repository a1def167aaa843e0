package service

import (
	"context"
	"fmt"

	"microblog/internal/model"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=groups.go -destination=./group_storage_mock.go -package=service microblog/internal/service GroupStorage
type GroupStorage interface {
	CreateGroup(ctx context.Context, group model.Group) (model.Group, error)
	GetGroupByID(ctx context.Context, groupID int64) (model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (model.Group, error)
	// ListGroups returns every group ordered by title.
	ListGroups(ctx context.Context) ([]model.Group, error)
	// DeleteGroup removes the group; posts keep existing with their
	// group reference cleared.
	DeleteGroup(ctx context.Context, groupID int64) error
}

// GroupService covers the admin-managed group lifecycle. Groups live
// independently of posts.
type GroupService struct {
	groupStorage GroupStorage
}

func NewGroupService(groupStorage GroupStorage) *GroupService {
	return &GroupService{groupStorage: groupStorage}
}

func (s *GroupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (model.Group, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Group{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.groupStorage.CreateGroup(ctx, model.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (model.Group, error) {
	if slug == "" {
		return model.Group{}, fmt.Errorf("slug is required: %w", ErrInvalidRequest)
	}
	return s.groupStorage.GetGroupBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.groupStorage.ListGroups(ctx)
}

func (s *GroupService) DeleteGroup(ctx context.Context, groupID int64) error {
	if groupID <= 0 {
		return fmt.Errorf("groupID must be > 0: %w", ErrInvalidRequest)
	}
	return s.groupStorage.DeleteGroup(ctx, groupID)
}
