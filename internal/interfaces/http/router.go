package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
	"github.com/aegis-support/aegis/internal/interfaces/http/routes"
)

// SetupRoutes installs global middleware and registers all route groups.
func (c *Container) SetupRoutes() error {
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Metrics())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return err
	}
	c.engine.GET("/metrics", func(ctx *gin.Context) {
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(ctx.Writer, ctx.Request)
	})

	c.engine.GET("/health", c.healthHandler.Check)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler: c.authHandler,
	})
	routes.SetupIssueRoutes(c.engine, &routes.IssueRouteConfig{
		IssueHandler:    c.issueHandler,
		GuidanceHandler: c.guidanceHandler,
		AuthMiddleware:  c.authMiddleware,
	})
	routes.SetupAnalysisRoutes(c.engine, &routes.AnalysisRouteConfig{
		AnalysisHandler: c.analysisHandler,
		AuthMiddleware:  c.authMiddleware,
	})
	routes.SetupGuidanceRoutes(c.engine, &routes.GuidanceRouteConfig{
		GuidanceHandler: c.guidanceHandler,
		AuthMiddleware:  c.authMiddleware,
	})
	routes.SetupAlertRoutes(c.engine, &routes.AlertRouteConfig{
		AlertHandler:   c.alertHandler,
		AuthMiddleware: c.authMiddleware,
	})

	return nil
}
