package routes

import (
	"github.com/gin-gonic/gin"

	guidancehandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/guidance"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
)

type GuidanceRouteConfig struct {
	GuidanceHandler *guidancehandlers.GuidanceHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupGuidanceRoutes(engine *gin.Engine, cfg *GuidanceRouteConfig) {
	templates := engine.Group("/templates")
	templates.Use(cfg.AuthMiddleware.RequireAuth())
	{
		templates.GET("", cfg.GuidanceHandler.ListTemplates)
		templates.POST("/:id/feedback", cfg.GuidanceHandler.RateTemplate)
	}
}
