package routes

import (
	"github.com/gin-gonic/gin"

	authhandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/auth"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *authhandlers.AuthHandler
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
	}
}
