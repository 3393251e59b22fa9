package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/service"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// ListUsuarios handles GET /admin/usuarios.
func ListUsuarios(c *gin.Context) {
	var params types.UserListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := service.NewUserService(c.Request.Context()).List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetUsuario handles GET /admin/usuarios/:id.
func GetUsuario(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := service.NewUserService(c.Request.Context()).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUsuario handles POST /admin/usuarios.
func CreateUsuario(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := service.NewUserService(c.Request.Context()).Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUsuario handles PUT /admin/usuarios/:id.
func UpdateUsuario(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := service.NewUserService(c.Request.Context()).Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUsuario handles DELETE /admin/usuarios/:id.
func DeleteUsuario(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := service.NewUserService(c.Request.Context()).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
