package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"microblog/internal/auth"
)

const (
	authCtxKey  = "authCtx"
	usernameKey = "authUsername"

	loginPath = "/auth/login/"
)

// resolveAuth turns a bearer token or the token cookie into an
// auth.Context. It never rejects: public pages accept anonymous
// viewers, requireAuth enforces where needed.
func (h *Handler) resolveAuth(c *gin.Context) {
	token := ""
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := c.Cookie("token"); err == nil {
		token = cookie
	}

	actor := auth.Anonymous()
	if token != "" {
		if claims, err := auth.ParseToken(h.jwtSecret, token); err == nil {
			actor = auth.Authenticated(claims.UserID)
			c.Set(usernameKey, claims.Username)
		}
	}

	c.Set(authCtxKey, actor)
	c.Next()
}

// requireAuth redirects anonymous requests to the login entry point,
// preserving the original path as the return target.
func (h *Handler) requireAuth(c *gin.Context) {
	if !actorFrom(c).Authenticated {
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, loginPath+"?next="+next)
		c.Abort()
		return
	}
	c.Next()
}

func actorFrom(c *gin.Context) auth.Context {
	if v, ok := c.Get(authCtxKey); ok {
		if actor, ok := v.(auth.Context); ok {
			return actor
		}
	}
	return auth.Anonymous()
}

func usernameFrom(c *gin.Context) string {
	return c.GetString(usernameKey)
}
