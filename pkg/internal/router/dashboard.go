package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
)

// RegisterDashboardRoutes binds the landing figures endpoint.
func RegisterDashboardRoutes(g *gin.RouterGroup) {
	g.GET("/dashboard", handle.Dashboard)
}
