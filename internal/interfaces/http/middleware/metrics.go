package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
)

// Metrics records request counts and latency per registered route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched requests collapse into one label to keep the
			// metric cardinality bounded.
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
