package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	cacheinmemory "microblog/internal/adapter/out/cache/inmemory"
	"microblog/internal/adapter/out/storage/inmemory"
	"microblog/internal/auth"
	"microblog/internal/model"
	"microblog/internal/service"
)

var testSecret = []byte("handler-test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	users    *inmemory.UserStorage
	posts    *inmemory.PostStorage
	groups   *inmemory.GroupStorage
	comments *inmemory.CommentStorage
	follows  *inmemory.FollowStorage

	postSvc  *service.PostService
	groupSvc *service.GroupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := inmemory.NewUserStorage()
	posts := inmemory.NewPostStorage()
	groups := inmemory.NewGroupStorage()
	comments := inmemory.NewCommentStorage()
	follows := inmemory.NewFollowStorage()
	posts.SetFollowSource(follows)
	groups.SetPostSource(posts)

	cache := cacheinmemory.NewFeedCache(service.FeedCacheTTL)

	postSvc := service.NewPostService(posts, groups, users, follows, comments, cache, nil)
	commentSvc := service.NewCommentService(comments, posts, nil)
	followSvc := service.NewFollowService(follows, users)
	groupSvc := service.NewGroupService(groups)

	cfg := Config{JWTSecret: testSecret, MediaDir: t.TempDir()}
	h := New(postSvc, commentSvc, followSvc, groupSvc, cfg)

	return &testEnv{
		router:   h.InitRoutes(cfg),
		users:    users,
		posts:    posts,
		groups:   groups,
		comments: comments,
		follows:  follows,
		postSvc:  postSvc,
		groupSvc: groupSvc,
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) model.User {
	t.Helper()
	return e.users.SeedUser(username)
}

func (e *testEnv) token(t *testing.T, u model.User) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, u.ID, u.Username, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, target, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreatePost_AnonymousRedirectsToLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/create/", "", url.Values{"text": {"hello"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))

	// nothing was persisted
	_, err := env.posts.GetPostByID(context.Background(), 1)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreatePost_RedirectsToProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")

	w := env.do(t, http.MethodPost, "/create/", env.token(t, leo), url.Values{"text": {"hello world"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	stored, err := env.posts.GetPostByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "hello world", stored.Text)
	require.Equal(t, leo.ID, stored.AuthorID)
}

func TestCreatePost_EmptyTextRedisplaysForm(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")

	w := env.do(t, http.MethodPost, "/create/", env.token(t, leo), url.Values{"text": {""}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body.Errors, "text")

	_, err := env.posts.GetPostByID(context.Background(), 1)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestEditPost_NonAuthorLeavesPostUntouched(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	mia := env.seedUser(t, "mia")
	ctx := context.Background()

	created, err := env.posts.CreatePost(ctx, model.Post{Text: "original", AuthorID: leo.ID})
	require.NoError(t, err)

	target := fmt.Sprintf("/posts/%d/edit/", created.ID)
	w := env.do(t, http.MethodPost, target, env.token(t, mia), url.Values{"text": {"hijacked"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, fmt.Sprintf("/posts/%d/", created.ID), w.Header().Get("Location"))

	stored, err := env.posts.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "original", stored.Text)
}

func TestEditPost_AuthorUpdatesText(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	ctx := context.Background()

	created, err := env.posts.CreatePost(ctx, model.Post{Text: "original", AuthorID: leo.ID})
	require.NoError(t, err)

	target := fmt.Sprintf("/posts/%d/edit/", created.ID)
	w := env.do(t, http.MethodPost, target, env.token(t, leo), url.Values{"text": {"edited"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, fmt.Sprintf("/posts/%d/", created.ID), w.Header().Get("Location"))

	stored, err := env.posts.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", stored.Text)
	require.Equal(t, created.PubDate, stored.PubDate)
}

func TestAddComment_EmptyTextStillRedirects(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	ctx := context.Background()

	created, err := env.posts.CreatePost(ctx, model.Post{Text: "post", AuthorID: leo.ID})
	require.NoError(t, err)

	target := fmt.Sprintf("/posts/%d/comment/", created.ID)
	w := env.do(t, http.MethodPost, target, env.token(t, leo), url.Values{"text": {""}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, fmt.Sprintf("/posts/%d/", created.ID), w.Header().Get("Location"))

	comments, err := env.comments.GetCommentsByPost(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestAddComment_Persists(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	mia := env.seedUser(t, "mia")
	ctx := context.Background()

	created, err := env.posts.CreatePost(ctx, model.Post{Text: "post", AuthorID: leo.ID})
	require.NoError(t, err)

	target := fmt.Sprintf("/posts/%d/comment/", created.ID)
	w := env.do(t, http.MethodPost, target, env.token(t, mia), url.Values{"text": {"nice one"}})
	require.Equal(t, http.StatusFound, w.Code)

	comments, err := env.comments.GetCommentsByPost(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "nice one", comments[0].Text)
	require.Equal(t, mia.ID, comments[0].AuthorID)
}

func TestFollowAndUnfollow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	mia := env.seedUser(t, "mia")
	ctx := context.Background()
	edge := model.Follow{UserID: mia.ID, AuthorID: leo.ID}

	w := env.do(t, http.MethodGet, "/profile/leo/follow/", env.token(t, mia), nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	exists, err := env.follows.FollowExists(ctx, edge)
	require.NoError(t, err)
	require.True(t, exists)

	// repeat is a no-op
	w = env.do(t, http.MethodGet, "/profile/leo/follow/", env.token(t, mia), nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = env.do(t, http.MethodGet, "/profile/leo/unfollow/", env.token(t, mia), nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	exists, err = env.follows.FollowExists(ctx, edge)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestFollow_SelfIsIgnored(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")

	w := env.do(t, http.MethodGet, "/profile/leo/follow/", env.token(t, leo), nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	exists, err := env.follows.FollowExists(context.Background(), model.Follow{UserID: leo.ID, AuthorID: leo.ID})
	require.NoError(t, err)
	require.False(t, exists)
}

func TestFollowFeed_AnonymousRedirectsToLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/follow/", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login/?next=%2Ffollow%2F", w.Header().Get("Location"))
}

func TestListFeed_Pagination(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := env.posts.CreatePost(ctx, model.Post{Text: fmt.Sprintf("post %d", i+1), AuthorID: leo.ID})
		require.NoError(t, err)
	}

	var page struct {
		Count       int  `json:"count"`
		HasNext     bool `json:"has_next"`
		HasPrevious bool `json:"has_previous"`
	}

	w := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 10, page.Count)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrevious)

	w = env.do(t, http.MethodGet, "/?page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 5, page.Count)
	require.False(t, page.HasNext)
	require.True(t, page.HasPrevious)
}

func TestListFeed_ServedFromCache(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	ctx := context.Background()

	_, err := env.posts.CreatePost(ctx, model.Post{Text: "cached", AuthorID: leo.ID})
	require.NoError(t, err)

	var page struct {
		Count int `json:"count"`
	}

	w := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 1, page.Count)

	// a new post does not show up while the cached page is fresh
	_, err = env.posts.CreatePost(ctx, model.Post{Text: "too new", AuthorID: leo.ID})
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 1, page.Count)

	// dropping the cache makes it visible
	require.NoError(t, env.postSvc.InvalidateFeedCache(ctx))

	w = env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 2, page.Count)
}

func TestGroupPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	ctx := context.Background()

	group, err := env.groupSvc.CreateGroup(ctx, service.CreateGroupRequest{Title: "Cats", Slug: "cats"})
	require.NoError(t, err)
	_, err = env.posts.CreatePost(ctx, model.Post{Text: "meow", AuthorID: leo.ID, GroupID: &group.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/group/cats/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Group model.Group `json:"group"`
		Posts struct {
			Count int `json:"count"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "cats", body.Group.Slug)
	require.Equal(t, 1, body.Posts.Count)
}

func TestGroupPage_UnknownSlug(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/group/nope/", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/profile/ghost/", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfile_FollowingFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	mia := env.seedUser(t, "mia")
	ctx := context.Background()

	require.NoError(t, env.follows.CreateFollow(ctx, model.Follow{UserID: mia.ID, AuthorID: leo.ID}))

	var body struct {
		Following bool `json:"following"`
	}

	w := env.do(t, http.MethodGet, "/profile/leo/", env.token(t, mia), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Following)

	w = env.do(t, http.MethodGet, "/profile/leo/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Following)
}

func TestPostDetail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")
	ctx := context.Background()

	created, err := env.posts.CreatePost(ctx, model.Post{Text: "detail", AuthorID: leo.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/posts/%d/", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Post   model.Post `json:"post"`
		Author model.User `json:"author"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "detail", body.Post.Text)
	require.Equal(t, "leo", body.Author.Username)
}

func TestPostDetail_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/posts/404/", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/posts/abc/", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveAuth_TokenCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	leo := env.seedUser(t, "leo")

	req := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader(url.Values{"text": {"via cookie"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "token", Value: env.token(t, leo)})

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/profile/leo/", w.Header().Get("Location"))
}

func TestResolveAuth_BadTokenStaysAnonymous(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/create/", "garbage-token", url.Values{"text": {"x"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), loginPath))
}
