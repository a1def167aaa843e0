package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"microblog/internal/service"
	"microblog/pkg/logger"
)

func (h *Handler) listFeed(c *gin.Context) {
	page, err := h.posts.ListFeed(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) listGroupPosts(c *gin.Context) {
	group, page, err := h.posts.ListGroupPosts(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"posts": page,
	})
}

func (h *Handler) listProfile(c *gin.Context) {
	profile, err := h.posts.ListProfile(c.Request.Context(), actorFrom(c), c.Param("username"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author":      profile.Author,
		"posts":       profile.Posts,
		"posts_count": profile.PostsCount,
		"following":   profile.Following,
	})
}

func (h *Handler) postDetail(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	detail, err := h.posts.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":        detail.Post,
		"author":      detail.Author,
		"posts_count": detail.PostsCount,
		"group":       detail.Group,
		"comments":    detail.Comments,
	})
}

func (h *Handler) listFollowFeed(c *gin.Context) {
	page, err := h.posts.ListFollowFeed(c.Request.Context(), actorFrom(c), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// createPostForm returns the blank form payload the create page binds.
func (h *Handler) createPostForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{"text": "", "group": nil, "image": nil},
	})
}

func (h *Handler) createPost(c *gin.Context) {
	req, ok := h.bindPostForm(c)
	if !ok {
		return
	}

	if _, err := h.posts.CreatePost(c.Request.Context(), actorFrom(c), req); err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": fieldErrors(err),
				"form":   gin.H{"text": req.Text, "group": req.GroupID},
			})
			return
		}
		respondError(c, err)
		return
	}

	redirectToProfile(c, usernameFrom(c))
}

func (h *Handler) editPostForm(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	detail, err := h.posts.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	if detail.Post.AuthorID != actorFrom(c).UserID {
		// non-authors are sent back to the post, nothing is shown
		redirectToPost(c, postID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":    gin.H{"text": detail.Post.Text, "group": detail.Post.GroupID, "image": detail.Post.Image},
		"is_edit": true,
	})
}

func (h *Handler) editPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	req, ok := h.bindPostForm(c)
	if !ok {
		return
	}

	update := service.UpdatePostRequest{Text: req.Text, GroupID: req.GroupID, Image: req.Image}
	if _, err := h.posts.UpdatePost(c.Request.Context(), actorFrom(c), postID, update); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			redirectToPost(c, postID)
		case errors.Is(err, service.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"errors":  fieldErrors(err),
				"form":    gin.H{"text": req.Text, "group": req.GroupID},
				"is_edit": true,
			})
		default:
			respondError(c, err)
		}
		return
	}

	redirectToPost(c, postID)
}

func (h *Handler) addComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	req := service.CreateCommentRequest{Text: c.PostForm("text")}
	if _, err := h.comments.AddComment(c.Request.Context(), actorFrom(c), postID, req); err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			// the page contract is redirect-always; the dropped input is
			// at least visible in the logs
			logger.FromContext(c.Request.Context()).Warn("comment rejected", "post_id", postID, "error", err)
			redirectToPost(c, postID)
			return
		}
		respondError(c, err)
		return
	}

	redirectToPost(c, postID)
}

// bindPostForm reads the shared create/edit form: text, an optional
// group id and an optional image upload.
func (h *Handler) bindPostForm(c *gin.Context) (service.CreatePostRequest, bool) {
	var req service.CreatePostRequest
	req.Text = c.PostForm("text")

	if raw := c.PostForm("group"); raw != "" {
		groupID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": gin.H{"group": "select a valid group"},
				"form":   gin.H{"text": req.Text, "group": raw},
			})
			return req, false
		}
		req.GroupID = &groupID
	}

	image, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"image": "could not store the image"},
			"form":   gin.H{"text": req.Text, "group": req.GroupID},
		})
		return req, false
	}
	req.Image = image

	return req, true
}

// saveImage stores an optional multipart image under the media dir with
// a generated name and returns the stored key.
func (h *Handler) saveImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	key := "posts/" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.mediaDir, key)); err != nil {
		return nil, err
	}
	return &key, nil
}

func fieldErrors(err error) gin.H {
	// the service wraps validator output; the form only has one
	// required field, so the mapping stays flat
	return gin.H{"text": "this field is required", "detail": err.Error()}
}
