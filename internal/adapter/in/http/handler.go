package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"microblog/internal/service"
)

// Handler maps the public path table onto the service layer. Responses
// are JSON payloads; navigation outcomes (post created, follow toggled,
// missing login) are expressed as redirects the way the site's pages
// expect.
type Handler struct {
	posts     *service.PostService
	comments  *service.CommentService
	follows   *service.FollowService
	groups    *service.GroupService
	jwtSecret []byte
	mediaDir  string
}

type Config struct {
	JWTSecret    []byte
	MediaDir     string
	ClientOrigin string
}

func New(
	posts *service.PostService,
	comments *service.CommentService,
	follows *service.FollowService,
	groups *service.GroupService,
	cfg Config,
) *Handler {
	return &Handler{
		posts:     posts,
		comments:  comments,
		follows:   follows,
		groups:    groups,
		jwtSecret: cfg.JWTSecret,
		mediaDir:  cfg.MediaDir,
	}
}

func (h *Handler) InitRoutes(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if cfg.ClientOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.ClientOrigin},
			AllowMethods:     []string{"GET", "POST"},
			AllowCredentials: true,
		}))
	}

	r.Use(h.resolveAuth)

	r.GET("/", h.listFeed)
	r.GET("/group/:slug/", h.listGroupPosts)
	r.GET("/profile/:username/", h.listProfile)
	r.GET("/posts/:id/", h.postDetail)

	authed := r.Group("/", h.requireAuth)
	{
		authed.GET("/create/", h.createPostForm)
		authed.POST("/create/", h.createPost)
		authed.GET("/posts/:id/edit/", h.editPostForm)
		authed.POST("/posts/:id/edit/", h.editPost)
		authed.POST("/posts/:id/comment/", h.addComment)
		authed.GET("/follow/", h.listFollowFeed)
		authed.GET("/profile/:username/follow/", h.follow)
		authed.GET("/profile/:username/unfollow/", h.unfollow)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "page not found", "path": c.Request.URL.Path})
	})

	return r
}
