package types

import (
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
)

// ClienteListParams are the accepted query params for cliente listings.
type ClienteListParams struct {
	query.Params
}

// CreateClienteRequest creates a cliente. DNI and correo must be unique
// across the table.
type CreateClienteRequest struct {
	DNI      string `form:"dni"      json:"dni"      rule:"required,max=255"`
	Nombre   string `form:"nombre"   json:"nombre"   rule:"required,max=255"`
	Correo   string `form:"correo"   json:"correo"   rule:"required,email,max=255"`
	Telefono string `form:"telefono" json:"telefono" rule:"omitempty,max=20"`
}

// UpdateClienteRequest replaces the mutable fields of a cliente. Uniqueness
// checks exclude the cliente being updated.
type UpdateClienteRequest struct {
	DNI      string `form:"dni"      json:"dni"      rule:"required,max=255"`
	Nombre   string `form:"nombre"   json:"nombre"   rule:"required,max=255"`
	Correo   string `form:"correo"   json:"correo"   rule:"required,email,max=255"`
	Telefono string `form:"telefono" json:"telefono" rule:"omitempty,max=20"`
}
