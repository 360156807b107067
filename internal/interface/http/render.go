package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
	"github.com/oksasatya/coursenet/pkg/helpers"
	"github.com/oksasatya/coursenet/pkg/validation"
)

// page is the data handed to every HTML template.
type page struct {
	AppName   string
	Title     string
	User      *entity.User
	RequestID string

	Posts []entity.Post
	Post  *entity.Post
	Query string

	Form          any
	Errors        validation.FieldErrors
	Flash         string
	Next          string
	ImagesEnabled bool
}

// View renders pages and the shared error pages.
type View struct {
	AppName string
	Logger  *logrus.Logger
}

func NewView(appName string, logger *logrus.Logger) *View {
	return &View{AppName: appName, Logger: logger}
}

func (v *View) HTML(c *gin.Context, status int, name string, p page) {
	p.AppName = v.AppName
	p.RequestID = c.GetString(middleware.CtxRequestID)
	if u, ok := middleware.CurrentUser(c); ok {
		p.User = u
	}
	c.HTML(status, name, p)
}

// NotFound renders the 404 page.
func (v *View) NotFound(c *gin.Context) {
	v.HTML(c, http.StatusNotFound, "error.html", page{
		Title: "Page not found",
		Flash: "The page you are looking for does not exist.",
	})
}

// Fail logs err with the request id and renders a generic 500 page; err text never reaches the client.
func (v *View) Fail(c *gin.Context, err error) {
	helpers.LogError(v.Logger, "request failed", err, logrus.Fields{
		"request_id": c.GetString(middleware.CtxRequestID),
		"path":       c.Request.URL.Path,
	})
	v.HTML(c, http.StatusInternalServerError, "error.html", page{
		Title: "Something went wrong",
		Flash: "We could not complete your request. Please try again later.",
	})
}
