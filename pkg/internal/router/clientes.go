package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
)

// RegisterClienteRoutes binds the cliente CRUD.
func RegisterClienteRoutes(g *gin.RouterGroup) {
	clienteRoutes := g.Group("/clientes")
	{
		clienteRoutes.GET("", handle.ListClientes)
		clienteRoutes.POST("", handle.CreateCliente)
		clienteRoutes.GET("/:id", handle.GetCliente)
		clienteRoutes.PUT("/:id", handle.UpdateCliente)
		clienteRoutes.DELETE("/:id", handle.DeleteCliente)
	}
}
