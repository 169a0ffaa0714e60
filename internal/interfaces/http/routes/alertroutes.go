package routes

import (
	"github.com/gin-gonic/gin"

	alerthandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/alert"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
)

type AlertRouteConfig struct {
	AlertHandler   *alerthandlers.AlertHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupAlertRoutes(engine *gin.Engine, cfg *AlertRouteConfig) {
	alerts := engine.Group("/alerts")
	alerts.Use(cfg.AuthMiddleware.RequireAuth())
	{
		alerts.GET("", cfg.AlertHandler.ListAlerts)
		alerts.POST("/:id/acknowledge", cfg.AlertHandler.AcknowledgeAlert)
	}
}
