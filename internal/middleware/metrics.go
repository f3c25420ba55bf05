package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wasel-app/wasel-api/internal/service"
)

// Metrics records per-request duration and status counts. The route template
// is preferred over the raw path so IDs do not explode label cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
