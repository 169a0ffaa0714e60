package routes

import (
	"github.com/gin-gonic/gin"

	guidancehandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/guidance"
	issuehandlers "github.com/aegis-support/aegis/internal/interfaces/http/handlers/issue"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
)

type IssueRouteConfig struct {
	IssueHandler    *issuehandlers.IssueHandler
	GuidanceHandler *guidancehandlers.GuidanceHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupIssueRoutes(engine *gin.Engine, cfg *IssueRouteConfig) {
	issues := engine.Group("/issues")
	issues.Use(cfg.AuthMiddleware.RequireAuth())
	{
		issues.GET("", cfg.IssueHandler.ListIssues)

		// Specific action endpoints must come before the bare /:id route.
		issues.PATCH("/:id/status", cfg.IssueHandler.UpdateStatus)
		issues.POST("/:id/comments", cfg.IssueHandler.AddComment)
		issues.POST("/:id/guidance", cfg.GuidanceHandler.GenerateTemplate)
		issues.POST("/:id/summary", cfg.GuidanceHandler.SummarizeIssue)

		issues.GET("/:id", cfg.IssueHandler.GetIssue)
	}
}
