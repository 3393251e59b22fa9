package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
	"github.com/grupovilla/gestprocesos/pkg/middleware"
)

// RegisterSchedulerRoutes binds the cron job monitor behind the
// administrador gate.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	schedRoutes := g.Group("/scheduler", middleware.RequireAdmin())
	{
		schedRoutes.GET("/jobs", handle.SchedulerJobs)
	}
}
