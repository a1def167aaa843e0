package inmemory

import (
	"context"
	"sync"
	"time"

	"microblog/internal/adapter/out/storage"
	"microblog/internal/model"
	"microblog/internal/service"
)

type PostStorage struct {
	mu      sync.RWMutex
	nextID  int64
	posts   map[int64]model.Post
	order   []int64 // insertion order, oldest first
	follows *FollowStorage
}

func NewPostStorage() *PostStorage {
	return &PostStorage{
		nextID: 1,
		posts:  make(map[int64]model.Post),
	}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = s.nextID
	s.nextID++
	if in.PubDate.IsZero() {
		in.PubDate = time.Now()
	}
	s.posts[in.ID] = in
	s.order = append(s.order, in.ID)
	return in, nil
}

func (s *PostStorage) UpdatePost(_ context.Context, params storage.UpdatePostParams) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[params.PostID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	p.Text = params.Text
	p.GroupID = params.GroupID
	p.Image = params.Image
	s.posts[params.PostID] = p
	return p, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.posts[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

func (s *PostStorage) GetPostAuthorID(_ context.Context, postID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[postID]
	if !ok {
		return 0, service.ErrNotFound
	}
	return p.AuthorID, nil
}

func (s *PostStorage) GetPosts(_ context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	return s.list(func(model.Post) bool { return true }, params), nil
}

func (s *PostStorage) GetPostsByGroup(_ context.Context, groupID int64, params storage.ListPostsParams) ([]model.Post, error) {
	return s.list(func(p model.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}, params), nil
}

func (s *PostStorage) GetPostsByAuthor(_ context.Context, authorID int64, params storage.ListPostsParams) ([]model.Post, error) {
	return s.list(func(p model.Post) bool {
		return p.AuthorID == authorID
	}, params), nil
}

// GetFollowedPosts needs the follow edges, so the app wires the same
// FollowStorage instance in via SetFollowSource.
func (s *PostStorage) GetFollowedPosts(_ context.Context, userID int64, params storage.ListPostsParams) ([]model.Post, error) {
	s.mu.RLock()
	src := s.follows
	s.mu.RUnlock()

	followed := map[int64]bool{}
	if src != nil {
		for _, authorID := range src.followedAuthors(userID) {
			followed[authorID] = true
		}
	}
	return s.list(func(p model.Post) bool {
		return followed[p.AuthorID]
	}, params), nil
}

func (s *PostStorage) CountPostsByAuthor(_ context.Context, authorID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *PostStorage) list(match func(model.Post) bool, params storage.ListPostsParams) []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Post
	skipped := 0
	// newest-first: walk insertion order backwards
	for i := len(s.order) - 1; i >= 0 && len(out) < params.Limit; i-- {
		p, ok := s.posts[s.order[i]]
		if !ok || !match(p) {
			continue
		}
		if skipped < params.Offset {
			skipped++
			continue
		}
		out = append(out, p)
	}
	return out
}

// SetFollowSource links the post storage to the follow storage so the
// followed-authors feed can be computed in memory.
func (s *PostStorage) SetFollowSource(src *FollowStorage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows = src
}

// clearGroupRef detaches every post of a deleted group, the in-memory
// equivalent of posts.group_id ON DELETE SET NULL.
func (s *PostStorage) clearGroupRef(groupID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.posts {
		if p.GroupID != nil && *p.GroupID == groupID {
			p.GroupID = nil
			s.posts[id] = p
		}
	}
}
