package events

import (
	"context"
	"encoding/json"
	"time"

	"microblog/internal/model"

	"github.com/nats-io/nats.go"
)

const (
	SubjectPostCreated    = "post.created"
	SubjectCommentCreated = "comment.created"
)

type PostCreatedEvent struct {
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	GroupID   *int64    `json:"group_id,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type CommentCreatedEvent struct {
	CommentID int64     `json:"comment_id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NatsPublisher pushes content events to NATS for downstream consumers
// (notification fan-out lives outside this service).
type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) PublishPostCreated(_ context.Context, post model.Post) error {
	event := PostCreatedEvent{
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		GroupID:   post.GroupID,
		Text:      post.Text,
		Timestamp: post.PubDate,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectPostCreated, data)
}

func (p *NatsPublisher) PublishCommentCreated(_ context.Context, comment model.Comment) error {
	event := CommentCreatedEvent{
		CommentID: comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Timestamp: comment.Created,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectCommentCreated, data)
}
