package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/coursenet/internal/interface/http"
)

type PageModule struct {
	Handler *handlers.PageHandler
}

func NewPageModule(h *handlers.PageHandler) *PageModule {
	return &PageModule{Handler: h}
}

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rg.GET("/about", m.Handler.About)
}
