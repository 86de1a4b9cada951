package routes

import (
	"github.com/gin-gonic/gin"

	"genie-gateway/internal/infrastructure/auth"
	"genie-gateway/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates route registration for the Genie API surface.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all routes under the /genie prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/genie")
	registerGenieRoutes(group, r.handlers.Genie, auth.RequireBearer())
}
