package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/service"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// ListCambiosGlobal handles GET /cambios.
func ListCambiosGlobal(c *gin.Context) {
	var params types.CambioListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := service.NewCambioService(c.Request.Context()).
		ListGlobal(c.Request.Context(), identity(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListCambios handles GET /procesos/:id/cambios.
func ListCambios(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var params types.CambioListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := service.NewCambioService(c.Request.Context()).
		ListByProceso(c.Request.Context(), identity(c), procesoID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetCambio handles GET /procesos/:id/cambios/:cambioId.
func GetCambio(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	cambioID, ok := paramID(c, "cambioId")
	if !ok {
		return
	}

	cambio, err := service.NewCambioService(c.Request.Context()).
		Get(c.Request.Context(), identity(c), procesoID, cambioID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cambio)
}

// CreateCambio handles POST /procesos/:id/cambios.
func CreateCambio(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req types.CreateCambioRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cambio, err := service.NewCambioService(c.Request.Context()).
		Create(c.Request.Context(), identity(c), procesoID, &req, formArchivos(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cambio)
}

// UpdateCambio handles PUT /procesos/:id/cambios/:cambioId.
func UpdateCambio(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	cambioID, ok := paramID(c, "cambioId")
	if !ok {
		return
	}

	var req types.UpdateCambioRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cambio, err := service.NewCambioService(c.Request.Context()).
		Update(c.Request.Context(), identity(c), procesoID, cambioID, &req, formArchivos(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cambio)
}

// DeleteCambio handles DELETE /procesos/:id/cambios/:cambioId.
func DeleteCambio(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	cambioID, ok := paramID(c, "cambioId")
	if !ok {
		return
	}

	err := service.NewCambioService(c.Request.Context()).
		Delete(c.Request.Context(), identity(c), procesoID, cambioID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": cambioID})
}

// DeleteCambioDocumento handles DELETE /procesos/:id/cambios/:cambioId/documentos/:docId.
func DeleteCambioDocumento(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	cambioID, ok := paramID(c, "cambioId")
	if !ok {
		return
	}

	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}

	err := service.NewCambioService(c.Request.Context()).
		DeleteDocumento(c.Request.Context(), identity(c), procesoID, cambioID, docID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": docID})
}
