package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/service"
)

// Dashboard handles GET /dashboard. Admins may pass all=1 for global
// figures.
func Dashboard(c *gin.Context) {
	all := c.Query("all") == "1"

	resumen, err := service.NewDashboardService(c.Request.Context()).
		Resumen(c.Request.Context(), identity(c), all)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resumen)
}
