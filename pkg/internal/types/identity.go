// Package types defines the request and response shapes of the HTTP API.
package types

// Identity is the resolved caller, injected into the request context by the
// identity middleware after matching the trusted email header against the
// users table.
type Identity struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the caller holds the administrador role.
func (i Identity) IsAdmin() bool {
	return i.Role == "administrador"
}
