package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/coursenet/internal/interface/http"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
)

type PostModule struct {
	Handler   *handlers.PostHandler
	LoginPath string
}

func NewPostModule(h *handlers.PostHandler, loginPath string) *PostModule {
	return &PostModule{Handler: h, LoginPath: loginPath}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Index)
	rg.GET("/community", m.Handler.Community)
	rg.GET("/search", m.Handler.Search)
	rg.GET("/post/:id", m.Handler.Show)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.LoginPath))
	{
		auth.GET("/make-post", m.Handler.NewForm)
		auth.POST("/make-post", m.Handler.Create)
	}
}
