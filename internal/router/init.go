package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/container"
	handlers "github.com/oksasatya/coursenet/internal/interface/http"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
	"github.com/oksasatya/coursenet/internal/router/modules"
	"github.com/oksasatya/coursenet/pkg/helpers"
	"github.com/oksasatya/coursenet/pkg/validation"
	"github.com/oksasatya/coursenet/web"
)

const loginPath = "/login"

// Deps is everything the HTTP layer needs; build it with DepsFromContainer.
type Deps struct {
	AppName string
	Logger  *logrus.Logger

	Credentials *application.CredentialService
	Auth        *application.SessionService
	Posts       *application.PostService
	Cookies     *helpers.Manager
	Checks      map[string]handlers.CheckFunc

	RequestTimeout time.Duration
	CORSOrigins    []string
	AccessLog      bool
	DebugMetrics   bool
}

func DepsFromContainer(c *container.Container) Deps {
	checks := make(map[string]handlers.CheckFunc, len(c.Checks))
	for name, fn := range c.Checks {
		checks[name] = handlers.CheckFunc(fn)
	}
	return Deps{
		AppName:        c.Config.AppName,
		Logger:         c.Logger,
		Credentials:    c.Credentials,
		Auth:           c.Auth,
		Posts:          c.PostService,
		Cookies:        c.Cookies,
		Checks:         checks,
		RequestTimeout: c.Config.RequestTimeout,
		CORSOrigins:    c.Config.CORSOrigins(),
		AccessLog:      c.Config.HTTPLogEnabled,
		DebugMetrics:   c.Config.DebugMetricsEnabled,
	}
}

// NewEngine builds the gin engine: templates, static assets, global middleware and every module.
func NewEngine(d Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(middleware.Session(d.Auth, d.Cookies, d.Logger))
	if d.AccessLog {
		r.Use(middleware.AccessLog(d.Logger))
	}
	r.StaticFS("/static", web.Static())

	v := validation.New()
	view := handlers.NewView(d.AppName, d.Logger)
	pages := handlers.NewPageHandler(view)

	reg := NewRegistry(r)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Credentials, d.Auth, d.Cookies, v, view, d.Logger), loginPath))
	reg.Add(modules.NewPostModule(handlers.NewPostHandler(d.Posts, v, view, d.Logger), loginPath))
	reg.Add(modules.NewPageModule(pages))
	reg.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.Checks)))
	if d.DebugMetrics {
		reg.Add(modules.NewDebugModule())
	}
	reg.AddAPI(modules.NewAPIModule(handlers.NewAPIHandler(d.Posts, d.Logger)))
	reg.RegisterAll()

	r.NoRoute(pages.NotFound)
	return r, nil
}
