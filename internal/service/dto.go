package service

import (
	"microblog/internal/model"
	"microblog/pkg/pagination"
)

type CreatePostRequest struct {
	Text    string `validate:"required"`
	GroupID *int64
	Image   *string
}

type UpdatePostRequest struct {
	Text    string `validate:"required"`
	GroupID *int64
	Image   *string
}

type CreateCommentRequest struct {
	Text string `validate:"required"`
}

type CreateGroupRequest struct {
	Title       string `validate:"required"`
	Slug        string `validate:"required"`
	Description string
}

// ProfilePage is the profile listing projection: the author's posts,
// their total post count and whether the viewer already follows them.
type ProfilePage struct {
	Author     model.User
	Posts      pagination.Page[model.Post]
	PostsCount int64
	Following  bool
}

// PostDetail is the single-post projection: the post, its author with
// the author's total post count, the group if any and all comments
// newest-first.
type PostDetail struct {
	Post       model.Post
	Author     model.User
	PostsCount int64
	Group      *model.Group
	Comments   []model.Comment
}
