package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/coursenet/internal/interface/http"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
)

// AuthModule wires the login, register and logout pages.
// Public: GET/POST /login, GET/POST /register
// Protected: GET /logout
type AuthModule struct {
	Handler   *handlers.AuthHandler
	LoginPath string
}

func NewAuthModule(h *handlers.AuthHandler, loginPath string) *AuthModule {
	return &AuthModule{Handler: h, LoginPath: loginPath}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/login", m.Handler.LoginForm)
	rg.POST("/login", m.Handler.Login)
	rg.GET("/register", m.Handler.RegisterForm)
	rg.POST("/register", m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.LoginPath))
	{
		auth.GET("/logout", m.Handler.Logout)
	}
}
