package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
)

// RegisterCambioRoutes binds the cross-proceso cambio listing.
func RegisterCambioRoutes(g *gin.RouterGroup) {
	g.GET("/cambios", handle.ListCambiosGlobal)
}
