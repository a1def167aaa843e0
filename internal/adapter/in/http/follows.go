package http

import (
	"github.com/gin-gonic/gin"
)

// follow always lands back on the author's profile; a self-follow or a
// repeated follow changes nothing on the way.
func (h *Handler) follow(c *gin.Context) {
	username := c.Param("username")
	if err := h.follows.Follow(c.Request.Context(), actorFrom(c), username); err != nil {
		respondError(c, err)
		return
	}
	redirectToProfile(c, username)
}

func (h *Handler) unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.follows.Unfollow(c.Request.Context(), actorFrom(c), username); err != nil {
		respondError(c, err)
		return
	}
	redirectToProfile(c, username)
}
