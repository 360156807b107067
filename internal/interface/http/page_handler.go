package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	View *View
}

func NewPageHandler(view *View) *PageHandler {
	return &PageHandler{View: view}
}

// About GET /about
func (h *PageHandler) About(c *gin.Context) {
	h.View.HTML(c, http.StatusOK, "about.html", page{Title: "About"})
}

// NotFound is the engine's NoRoute handler.
func (h *PageHandler) NotFound(c *gin.Context) {
	h.View.NotFound(c)
}
