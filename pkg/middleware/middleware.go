// Package middleware provides the gin middleware chain: request logging,
// CORS, metrics, tracing, storage injection and identity resolution.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/metrics"
)

// PrometheusMiddleware records request counts and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		method := c.Request.Method

		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		c.Next()

		metrics.RequestCounter.WithLabelValues(method, path).Inc()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
