package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/coursenet/internal/interface/http"
)

// APIModule serves the read-only JSON feed under /api.
type APIModule struct {
	Handler *handlers.APIHandler
}

func NewAPIModule(h *handlers.APIHandler) *APIModule {
	return &APIModule{Handler: h}
}

func (m *APIModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.ListPosts)
	rg.GET("/posts/:id", m.Handler.GetPost)
}
