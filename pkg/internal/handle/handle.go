// Package handle implements the HTTP request handlers. Handlers bind and
// translate; the business rules live in pkg/internal/service.
package handle

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
	"github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/middleware"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// validation 422, conflict 409, not found 404, anything else 500.
func respondError(c *gin.Context, err error) {
	if ve, ok := errs.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
		return
	}

	if ce, ok := errs.AsConflict(err); ok {
		c.JSON(http.StatusConflict, gin.H{"error": ce.Msg, "field": ce.Field})
		return
	}

	if errs.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	log.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// respondBindError turns a gin binding failure into the 422 shape.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"_": err.Error()}})
}

// paramID parses a numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid " + name})
		return 0, false
	}

	return uint(v), true
}

// identity returns the resolved caller. When the identity middleware is
// disabled no scoping applies, so the caller acts as an administrador.
func identity(c *gin.Context) types.Identity {
	if ident, ok := middleware.GetIdentity(c); ok {
		return ident
	}

	return types.Identity{Role: model.RolAdministrador}
}

// formArchivos extracts the uploaded files from the multipart form. Both
// "archivos[]" and "archivos" field names are accepted. Requests without a
// multipart body simply carry no files.
func formArchivos(c *gin.Context) []types.ArchivoSubida {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	headers := form.File["archivos[]"]
	if len(headers) == 0 {
		headers = form.File["archivos"]
	}

	files := make([]types.ArchivoSubida, 0, len(headers))
	for _, fh := range headers {
		files = append(files, archivoFromHeader(fh))
	}

	return files
}

func archivoFromHeader(fh *multipart.FileHeader) types.ArchivoSubida {
	return types.ArchivoSubida{
		Nombre:      fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
