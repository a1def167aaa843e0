package service

import (
	"context"
	"fmt"

	"microblog/internal/auth"
	"microblog/internal/model"
	"microblog/pkg/logger"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=comments.go -destination=./comment_storage_mock.go -package=service microblog/internal/service CommentStorage
type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostStorage
	events         EventPublisher
}

func NewCommentService(commentStorage CommentStorage, postStorage PostStorage, events EventPublisher) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
		events:         events,
	}
}

// AddComment attaches a comment to an existing post. The post must
// resolve (ErrNotFound otherwise) and the text must be non-empty.
func (s *CommentService) AddComment(ctx context.Context, actor auth.Context, postID int64, req CreateCommentRequest) (model.Comment, error) {
	if !actor.Authenticated {
		return model.Comment{}, ErrUnauthenticated
	}
	if postID <= 0 {
		return model.Comment{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	if _, err := s.postStorage.GetPostAuthorID(ctx, postID); err != nil {
		return model.Comment{}, err
	}

	if err := validator.New().Struct(req); err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	comment, err := s.commentStorage.CreateComment(ctx, model.Comment{
		PostID:   postID,
		AuthorID: actor.UserID,
		Text:     req.Text,
	})
	if err != nil {
		return model.Comment{}, err
	}

	if s.events != nil {
		if err := s.events.PublishCommentCreated(ctx, comment); err != nil {
			logger.FromContext(ctx).Warn("publish comment.created failed", "error", err, "comment_id", comment.ID)
		}
	}
	return comment, nil
}
