package routes

import (
	"matchboxd_backend/internal/handlers"
	"matchboxd_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes. Auth endpoints and match reads
// are public; everything touching the caller's own records requires a token.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.MatchHandler.RegisterPublicRoutes(api)
	}

	protected := ginRouter.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		appHandlers.SettingsHandler.RegisterRoutes(protected)
		appHandlers.MatchHandler.RegisterProtectedRoutes(protected)
		appHandlers.UserHandler.RegisterRoutes(protected)
	}
}
