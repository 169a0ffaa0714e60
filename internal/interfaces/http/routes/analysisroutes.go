package routes

import (
	"github.com/gin-gonic/gin"

	analysishandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/analysis"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
)

type AnalysisRouteConfig struct {
	AnalysisHandler *analysishandlers.AnalysisHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupAnalysisRoutes(engine *gin.Engine, cfg *AnalysisRouteConfig) {
	engine.POST("/analysis", cfg.AuthMiddleware.RequireAuth(), cfg.AnalysisHandler.AnalyzeIssue)
	engine.GET("/issues/:id/similar", cfg.AuthMiddleware.RequireAuth(), cfg.AnalysisHandler.FindSimilarIssues)
	engine.GET("/customers/:id/history", cfg.AuthMiddleware.RequireAuth(), cfg.AnalysisHandler.GetCustomerHistory)
}
