package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/service"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// ListProcesos handles GET /procesos.
func ListProcesos(c *gin.Context) {
	var params types.ProcesoListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := service.NewProcesoService(c.Request.Context()).
		List(c.Request.Context(), identity(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProceso handles GET /procesos/:id.
func GetProceso(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	proceso, err := service.NewProcesoService(c.Request.Context()).
		Get(c.Request.Context(), identity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, proceso)
}

// CreateProceso handles POST /procesos (multipart with optional archivos).
func CreateProceso(c *gin.Context) {
	var req types.CreateProcesoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	proceso, err := service.NewProcesoService(c.Request.Context()).
		Create(c.Request.Context(), &req, formArchivos(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, proceso)
}

// UpdateProceso handles PUT /procesos/:id.
func UpdateProceso(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateProcesoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	proceso, err := service.NewProcesoService(c.Request.Context()).
		Update(c.Request.Context(), identity(c), id, &req, formArchivos(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, proceso)
}

// DeleteProceso handles DELETE /procesos/:id.
func DeleteProceso(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := service.NewProcesoService(c.Request.Context()).
		Delete(c.Request.Context(), identity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CalendarioProcesos handles GET /procesos/calendario.
func CalendarioProcesos(c *gin.Context) {
	events, err := service.NewProcesoService(c.Request.Context()).
		Calendar(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// DeleteProcesoDocumento handles DELETE /procesos/:id/documentos/:docId.
func DeleteProcesoDocumento(c *gin.Context) {
	procesoID, ok := paramID(c, "id")
	if !ok {
		return
	}

	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}

	err := service.NewProcesoService(c.Request.Context()).
		DeleteDocumento(c.Request.Context(), identity(c), procesoID, docID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": docID})
}
