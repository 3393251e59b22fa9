package types

import (
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
)

// UserListParams are the accepted query params for user listings.
type UserListParams struct {
	query.Params
}

// UserWithCounts is a user row plus the number of non-terminal procesos and
// cambios still assigned to them.
type UserWithCounts struct {
	model.User

	ProcesosActivos int64 `json:"procesos_activos"`
	CambiosActivos  int64 `json:"cambios_activos"`
}

// CreateUserRequest creates an account. Email must be unique.
type CreateUserRequest struct {
	Name     string `form:"name"     json:"name"     rule:"required,max=255"`
	Email    string `form:"email"    json:"email"    rule:"required,email,max=255"`
	Password string `form:"password" json:"password" rule:"required,min=8,max=72"`
	Role     string `form:"role"     json:"role"     rule:"required,oneof=editor administrador"`
}

// UpdateUserRequest updates an account. An empty password keeps the current
// one.
type UpdateUserRequest struct {
	Name     string `form:"name"     json:"name"     rule:"required,max=255"`
	Email    string `form:"email"    json:"email"    rule:"required,email,max=255"`
	Password string `form:"password" json:"password" rule:"omitempty,min=8,max=72"`
	Role     string `form:"role"     json:"role"     rule:"required,oneof=editor administrador"`
}
