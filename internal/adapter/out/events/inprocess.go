package events

import (
	"context"
	"sync"

	"microblog/internal/model"
)

// Event is the in-process envelope delivered to Bus subscribers.
type Event struct {
	Subject string
	Post    *model.Post
	Comment *model.Comment
}

// Bus is the no-broker fallback: subscribers get content events over
// buffered channels; a full subscriber drops the event rather than
// blocking the publishing request.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
	buf  int
}

func NewBus(buf int) *Bus {
	if buf <= 0 {
		buf = 64
	}
	return &Bus{
		subs: make(map[chan Event]struct{}),
		buf:  buf,
	}
}

func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, b.buf)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
		}
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (b *Bus) PublishPostCreated(_ context.Context, post model.Post) error {
	b.publish(Event{Subject: SubjectPostCreated, Post: &post})
	return nil
}

func (b *Bus) PublishCommentCreated(_ context.Context, comment model.Comment) error {
	b.publish(Event{Subject: SubjectCommentCreated, Comment: &comment})
	return nil
}

func (b *Bus) publish(e Event) {
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
	b.mu.RUnlock()
}
