package router

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/handle"
)

// RegisterProcesoRoutes binds procesos, their calendar feed, their
// attachments and the nested cambios.
func RegisterProcesoRoutes(g *gin.RouterGroup) {
	procesoRoutes := g.Group("/procesos")
	{
		procesoRoutes.GET("", handle.ListProcesos)
		procesoRoutes.POST("", handle.CreateProceso)
		procesoRoutes.GET("/calendario", handle.CalendarioProcesos)
		procesoRoutes.GET("/:id", handle.GetProceso)
		procesoRoutes.PUT("/:id", handle.UpdateProceso)
		procesoRoutes.DELETE("/:id", handle.DeleteProceso)
		procesoRoutes.DELETE("/:id/documentos/:docId", handle.DeleteProcesoDocumento)

		cambioRoutes := procesoRoutes.Group("/:id/cambios")
		{
			cambioRoutes.GET("", handle.ListCambios)
			cambioRoutes.POST("", handle.CreateCambio)
			cambioRoutes.GET("/:cambioId", handle.GetCambio)
			cambioRoutes.PUT("/:cambioId", handle.UpdateCambio)
			cambioRoutes.DELETE("/:cambioId", handle.DeleteCambio)
			cambioRoutes.DELETE("/:cambioId/documentos/:docId", handle.DeleteCambioDocumento)
		}
	}
}
