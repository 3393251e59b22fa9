package types

import (
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
)

// CambioListParams are the accepted query params for cambio listings, both
// per proceso and global.
type CambioListParams struct {
	query.Params
}

// CreateCambioRequest creates a cambio inside a proceso. Files follow the
// same rules as proceso attachments.
type CreateCambioRequest struct {
	Titulo      string `form:"titulo"      json:"titulo"      rule:"required,max=255"`
	Descripcion string `form:"descripcion" json:"descripcion" rule:"omitempty"`
	Estado      string `form:"estado"      json:"estado"      rule:"required,estado"`
	Fecha       string `form:"fecha"       json:"fecha"       rule:"required,datetime=2006-01-02"`
	EditorID    uint   `form:"editor_id"   json:"editor_id"   rule:"required"`
}

// UpdateCambioRequest replaces the mutable fields of a cambio. The owning
// proceso and the editor stay fixed after creation.
type UpdateCambioRequest struct {
	Titulo      string `form:"titulo"      json:"titulo"      rule:"required,max=255"`
	Descripcion string `form:"descripcion" json:"descripcion" rule:"omitempty"`
	Estado      string `form:"estado"      json:"estado"      rule:"required,estado"`
	Fecha       string `form:"fecha"       json:"fecha"       rule:"required,datetime=2006-01-02"`
}
