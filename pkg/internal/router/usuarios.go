package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
	"github.com/grupovilla/gestprocesos/pkg/middleware"
)

// RegisterUsuarioRoutes binds account administration behind the
// administrador gate.
func RegisterUsuarioRoutes(g *gin.RouterGroup) {
	adminRoutes := g.Group("/admin", middleware.RequireAdmin())
	{
		adminRoutes.GET("/usuarios", handle.ListUsuarios)
		adminRoutes.POST("/usuarios", handle.CreateUsuario)
		adminRoutes.GET("/usuarios/:id", handle.GetUsuario)
		adminRoutes.PUT("/usuarios/:id", handle.UpdateUsuario)
		adminRoutes.DELETE("/usuarios/:id", handle.DeleteUsuario)
	}
}
