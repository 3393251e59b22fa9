// Package api assembles the versioned HTTP surface.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/router"
)

// RegisterGroup binds every /api/v1 route onto the engine. The identity
// middleware is expected to already sit on the engine's chain.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	v1 := e.Group("/api/v1")

	router.RegisterHealthCheckRoute(v1)
	router.RegisterDashboardRoutes(v1)
	router.RegisterClienteRoutes(v1)
	router.RegisterProcesoRoutes(v1)
	router.RegisterCambioRoutes(v1)
	router.RegisterUsuarioRoutes(v1)
	router.RegisterSchedulerRoutes(v1)

	return e
}
