package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
)

// RegisterHealthCheckRoute binds the health checks.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("", handle.Health)
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/s3", handle.HealthS3)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}
}
