package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
	"github.com/oksasatya/coursenet/pkg/helpers"
	"github.com/oksasatya/coursenet/pkg/validation"
)

// maxImageSize bounds uploaded post images.
const maxImageSize = 5 << 20

type PostHandler struct {
	Posts     *application.PostService
	Validator *validation.Validator
	View      *View
	Logger    *logrus.Logger
}

func NewPostHandler(posts *application.PostService, v *validation.Validator, view *View, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Validator: v, View: view, Logger: logger}
}

// Index GET / lists the current user's posts; anonymous visitors get none.
func (h *PostHandler) Index(c *gin.Context) {
	posts := []entity.Post{}
	if u, ok := middleware.CurrentUser(c); ok {
		var err error
		posts, err = h.Posts.ListByAuthor(c.Request.Context(), u.ID)
		if err != nil {
			h.View.Fail(c, err)
			return
		}
	}
	h.View.HTML(c, http.StatusOK, "index.html", page{Posts: posts})
}

// Community GET /community
func (h *PostHandler) Community(c *gin.Context) {
	posts, err := h.Posts.ListAll(c.Request.Context())
	if err != nil {
		h.View.Fail(c, err)
		return
	}
	h.View.HTML(c, http.StatusOK, "community.html", page{Title: "Community", Posts: posts})
}

// Show GET /post/:id
func (h *PostHandler) Show(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.View.NotFound(c)
		return
	}
	p, err := h.Posts.GetByID(c.Request.Context(), id)
	if errors.Is(err, application.ErrPostNotFound) {
		h.View.NotFound(c)
		return
	}
	if err != nil {
		h.View.Fail(c, err)
		return
	}
	h.View.HTML(c, http.StatusOK, "post.html", page{Title: p.Title, Post: p})
}

// Search GET /search?q=
func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	posts, err := h.Posts.Search(c.Request.Context(), q)
	if err != nil {
		h.View.Fail(c, err)
		return
	}
	h.View.HTML(c, http.StatusOK, "search.html", page{Title: "Search", Query: q, Posts: posts})
}

// NewForm GET /make-post
func (h *PostHandler) NewForm(c *gin.Context) {
	h.View.HTML(c, http.StatusOK, "make-post.html", page{Title: "New Post", Form: postForm{}, ImagesEnabled: h.Posts.ImagesEnabled()})
}

// Create POST /make-post
func (h *PostHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	ctx := c.Request.Context()
	form := bindPostForm(c)

	rerender := func(status int, errs validation.FieldErrors) {
		h.View.HTML(c, status, "make-post.html", page{Title: "New Post", Form: form, Errors: errs, ImagesEnabled: h.Posts.ImagesEnabled()})
	}

	if h.Posts.ImagesEnabled() {
		if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
			form.HasImage = true
			if fh.Size > maxImageSize {
				rerender(http.StatusUnprocessableEntity, validation.FieldErrors{{Field: "image", Message: "must be at most 5 MB"}})
				return
			}
			if errs := h.Validator.Struct(form); errs != nil {
				rerender(http.StatusUnprocessableEntity, errs)
				return
			}
			f, err := fh.Open()
			if err != nil {
				h.View.Fail(c, err)
				return
			}
			url, err := h.Posts.UploadImage(ctx, u.ID, fh.Filename, fh.Header.Get("Content-Type"), f)
			_ = f.Close()
			if err != nil {
				helpers.LogError(h.Logger, "image upload failed", err, logrus.Fields{"user_id": u.ID, "request_id": c.GetString(middleware.CtxRequestID)})
				rerender(http.StatusUnprocessableEntity, validation.FieldErrors{{Field: "image", Message: "could not be uploaded"}})
				return
			}
			form.ImgURL = url
		}
	}

	if errs := h.Validator.Struct(form); errs != nil {
		rerender(http.StatusUnprocessableEntity, errs)
		return
	}

	p, err := h.Posts.Create(ctx, application.CreatePostInput{
		AuthorID:   u.ID,
		AuthorName: u.Name,
		Title:      form.Title,
		Subtitle:   form.Subtitle,
		ImgURL:     form.ImgURL,
		Content:    form.Content,
	})
	if err != nil {
		h.View.Fail(c, err)
		return
	}
	helpers.LogInfo(h.Logger, "post created", logrus.Fields{"post_id": p.ID, "user_id": u.ID})
	c.Redirect(http.StatusSeeOther, "/")
}
