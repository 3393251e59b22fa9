package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/service"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// ListClientes handles GET /clientes.
func ListClientes(c *gin.Context) {
	var params types.ClienteListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := service.NewClienteService(c.Request.Context()).List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetCliente handles GET /clientes/:id.
func GetCliente(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cliente, err := service.NewClienteService(c.Request.Context()).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cliente)
}

// CreateCliente handles POST /clientes.
func CreateCliente(c *gin.Context) {
	var req types.CreateClienteRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cliente, err := service.NewClienteService(c.Request.Context()).Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

// UpdateCliente handles PUT /clientes/:id.
func UpdateCliente(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateClienteRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cliente, err := service.NewClienteService(c.Request.Context()).Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cliente)
}

// DeleteCliente handles DELETE /clientes/:id.
func DeleteCliente(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := service.NewClienteService(c.Request.Context()).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
