package router

import "github.com/gin-gonic/gin"

// Registry collects modules for the HTML site (root group) and the JSON API (/api).
type Registry struct {
	Engine *gin.Engine
	Web    *gin.RouterGroup
	API    *gin.RouterGroup

	webModules []Module
	apiModules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		Engine: engine,
		Web:    &engine.RouterGroup,
		API:    engine.Group("/api"),
	}
}

func (r *Registry) Add(mod Module) {
	r.webModules = append(r.webModules, mod)
}

func (r *Registry) AddAPI(mod Module) {
	r.apiModules = append(r.apiModules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.webModules {
		m.Register(r.Web)
	}
	for _, m := range r.apiModules {
		m.Register(r.API)
	}
}
