package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
	"github.com/oksasatya/coursenet/pkg/helpers"
	"github.com/oksasatya/coursenet/pkg/response"
)

// APIHandler exposes the community feed as JSON.
type APIHandler struct {
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewAPIHandler(posts *application.PostService, logger *logrus.Logger) *APIHandler {
	return &APIHandler{Posts: posts, Logger: logger}
}

// ListPosts GET /api/posts
func (h *APIHandler) ListPosts(c *gin.Context) {
	posts, err := h.Posts.ListAll(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, "posts", gin.H{"count": len(posts)})
}

// GetPost GET /api/posts/:id
func (h *APIHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Abort(c, http.StatusNotFound, "post not found", nil)
		return
	}
	p, err := h.Posts.GetByID(c.Request.Context(), id)
	if errors.Is(err, application.ErrPostNotFound) {
		response.Abort(c, http.StatusNotFound, "post not found", nil)
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p, "post", nil)
}

func (h *APIHandler) internal(c *gin.Context, err error) {
	helpers.LogError(h.Logger, "api request failed", err, logrus.Fields{"request_id": c.GetString(middleware.CtxRequestID)})
	response.Abort(c, http.StatusInternalServerError, "internal error", nil)
}
