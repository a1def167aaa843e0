package service

import (
	"context"

	"microblog/internal/model"
)

//go:generate mockgen -source=events.go -destination=./event_publisher_mock.go -package=service microblog/internal/service EventPublisher

// EventPublisher notifies downstream consumers about new content.
// Publish failures never fail the mutation that produced the event.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, post model.Post) error
	PublishCommentCreated(ctx context.Context, comment model.Comment) error
}
