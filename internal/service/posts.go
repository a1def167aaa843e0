package service

import (
	"context"
	"fmt"
	"time"

	"microblog/internal/adapter/out/storage"
	"microblog/internal/auth"
	"microblog/internal/model"
	"microblog/pkg/logger"
	"microblog/pkg/pagination"

	"github.com/go-playground/validator/v10"
)

const (
	// PostsPerPage is the fixed page size of every post listing.
	PostsPerPage = 10

	// FeedCacheTTL bounds how stale the cached main feed may get.
	FeedCacheTTL = 20 * time.Second
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service microblog/internal/service PostStorage,FeedCache
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	UpdatePost(ctx context.Context, params storage.UpdatePostParams) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPostAuthorID(ctx context.Context, postID int64) (int64, error)
	GetPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error)
	GetPostsByGroup(ctx context.Context, groupID int64, params storage.ListPostsParams) ([]model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID int64, params storage.ListPostsParams) ([]model.Post, error)
	GetFollowedPosts(ctx context.Context, userID int64, params storage.ListPostsParams) ([]model.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// FeedCache holds rendered feed pages for up to FeedCacheTTL. Reads may
// return data that stale; Invalidate makes the next read hit storage.
type FeedCache interface {
	GetFeedPage(ctx context.Context, page int) (pagination.Page[model.Post], bool, error)
	SetFeedPage(ctx context.Context, page int, p pagination.Page[model.Post]) error
	Invalidate(ctx context.Context) error
}

type PostService struct {
	postStorage    PostStorage
	groupStorage   GroupStorage
	userStorage    UserStorage
	followStorage  FollowStorage
	commentStorage CommentStorage
	feedCache      FeedCache
	events         EventPublisher
}

func NewPostService(
	postStorage PostStorage,
	groupStorage GroupStorage,
	userStorage UserStorage,
	followStorage FollowStorage,
	commentStorage CommentStorage,
	feedCache FeedCache,
	events EventPublisher,
) *PostService {
	return &PostService{
		postStorage:    postStorage,
		groupStorage:   groupStorage,
		userStorage:    userStorage,
		followStorage:  followStorage,
		commentStorage: commentStorage,
		feedCache:      feedCache,
		events:         events,
	}
}

func listParams(req pagination.PageRequest) storage.ListPostsParams {
	return storage.ListPostsParams{
		Limit:  req.Size + 1,
		Offset: req.Offset(),
	}
}

// ListFeed returns one page of the global feed, newest-first. Pages are
// served from the feed cache when present; post mutations never
// invalidate it, so content may lag storage by up to FeedCacheTTL.
func (s *PostService) ListFeed(ctx context.Context, page int) (pagination.Page[model.Post], error) {
	log := logger.FromContext(ctx)
	req := pagination.PageRequest{Page: page, Size: PostsPerPage}.Normalize(PostsPerPage)

	if s.feedCache != nil {
		cached, ok, err := s.feedCache.GetFeedPage(ctx, req.Page)
		if err != nil {
			log.Warn("feed cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	posts, err := s.postStorage.GetPosts(ctx, listParams(req))
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}
	result := pagination.NewPage(posts, req)

	if s.feedCache != nil {
		if err := s.feedCache.SetFeedPage(ctx, req.Page, result); err != nil {
			log.Warn("feed cache write failed", "error", err)
		}
	}
	return result, nil
}

// InvalidateFeedCache drops every cached feed page so the next read
// reflects current storage.
func (s *PostService) InvalidateFeedCache(ctx context.Context) error {
	if s.feedCache == nil {
		return nil
	}
	return s.feedCache.Invalidate(ctx)
}

// ListGroupPosts resolves a group by slug and returns one page of its
// posts, newest-first.
func (s *PostService) ListGroupPosts(ctx context.Context, slug string, page int) (model.Group, pagination.Page[model.Post], error) {
	var empty pagination.Page[model.Post]

	group, err := s.groupStorage.GetGroupBySlug(ctx, slug)
	if err != nil {
		return model.Group{}, empty, err
	}

	req := pagination.PageRequest{Page: page, Size: PostsPerPage}.Normalize(PostsPerPage)
	posts, err := s.postStorage.GetPostsByGroup(ctx, group.ID, listParams(req))
	if err != nil {
		return model.Group{}, empty, err
	}
	return group, pagination.NewPage(posts, req), nil
}

// ListProfile resolves a user by username and returns one page of their
// posts plus the total count and whether the viewer follows them. An
// anonymous viewer gets Following=false.
func (s *PostService) ListProfile(ctx context.Context, viewer auth.Context, username string, page int) (ProfilePage, error) {
	var out ProfilePage

	author, err := s.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return out, err
	}

	req := pagination.PageRequest{Page: page, Size: PostsPerPage}.Normalize(PostsPerPage)
	posts, err := s.postStorage.GetPostsByAuthor(ctx, author.ID, listParams(req))
	if err != nil {
		return out, err
	}

	count, err := s.postStorage.CountPostsByAuthor(ctx, author.ID)
	if err != nil {
		return out, err
	}

	following := false
	if viewer.Authenticated {
		following, err = s.followStorage.FollowExists(ctx, model.Follow{
			UserID:   viewer.UserID,
			AuthorID: author.ID,
		})
		if err != nil {
			return out, err
		}
	}

	out.Author = author
	out.Posts = pagination.NewPage(posts, req)
	out.PostsCount = count
	out.Following = following
	return out, nil
}

// GetPostDetail returns a post with its author, the author's total post
// count, its group if any and all comments newest-first.
func (s *PostService) GetPostDetail(ctx context.Context, postID int64) (PostDetail, error) {
	var out PostDetail

	if postID <= 0 {
		return out, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return out, err
	}

	author, err := s.userStorage.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return out, err
	}

	count, err := s.postStorage.CountPostsByAuthor(ctx, post.AuthorID)
	if err != nil {
		return out, err
	}

	var group *model.Group
	if post.GroupID != nil {
		g, err := s.groupStorage.GetGroupByID(ctx, *post.GroupID)
		if err != nil {
			return out, err
		}
		group = &g
	}

	comments, err := s.commentStorage.GetCommentsByPost(ctx, postID)
	if err != nil {
		return out, err
	}

	out.Post = post
	out.Author = author
	out.PostsCount = count
	out.Group = group
	out.Comments = comments
	return out, nil
}

// ListFollowFeed returns one page of posts authored by users the viewer
// follows. Empty when the viewer follows no one.
func (s *PostService) ListFollowFeed(ctx context.Context, viewer auth.Context, page int) (pagination.Page[model.Post], error) {
	var empty pagination.Page[model.Post]

	if !viewer.Authenticated {
		return empty, ErrUnauthenticated
	}

	req := pagination.PageRequest{Page: page, Size: PostsPerPage}.Normalize(PostsPerPage)
	posts, err := s.postStorage.GetFollowedPosts(ctx, viewer.UserID, listParams(req))
	if err != nil {
		return empty, err
	}
	return pagination.NewPage(posts, req), nil
}

// CreatePost persists a new post for the actor. pub_date is set by
// storage; the group reference, when given, must resolve.
func (s *PostService) CreatePost(ctx context.Context, actor auth.Context, req CreatePostRequest) (model.Post, error) {
	if !actor.Authenticated {
		return model.Post{}, ErrUnauthenticated
	}
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := s.checkGroupRef(ctx, req.GroupID); err != nil {
		return model.Post{}, err
	}

	post, err := s.postStorage.CreatePost(ctx, model.Post{
		Text:     req.Text,
		AuthorID: actor.UserID,
		GroupID:  req.GroupID,
		Image:    req.Image,
	})
	if err != nil {
		return model.Post{}, err
	}

	if s.events != nil {
		if err := s.events.PublishPostCreated(ctx, post); err != nil {
			logger.FromContext(ctx).Warn("publish post.created failed", "error", err, "post_id", post.ID)
		}
	}
	return post, nil
}

// UpdatePost edits a post in place. Only the author may edit; anyone
// else gets ErrForbidden without any write. Author and pub_date are
// never touched.
func (s *PostService) UpdatePost(ctx context.Context, actor auth.Context, postID int64, req UpdatePostRequest) (model.Post, error) {
	if !actor.Authenticated {
		return model.Post{}, ErrUnauthenticated
	}
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	authorID, err := s.postStorage.GetPostAuthorID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}
	if authorID != actor.UserID {
		return model.Post{}, fmt.Errorf("%w: not the post author", ErrForbidden)
	}

	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := s.checkGroupRef(ctx, req.GroupID); err != nil {
		return model.Post{}, err
	}

	return s.postStorage.UpdatePost(ctx, storage.UpdatePostParams{
		PostID:  postID,
		Text:    req.Text,
		GroupID: req.GroupID,
		Image:   req.Image,
	})
}

func (s *PostService) checkGroupRef(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groupStorage.GetGroupByID(ctx, *groupID); err != nil {
		return fmt.Errorf("%w: unknown group %d", ErrInvalidRequest, *groupID)
	}
	return nil
}
