package model

import (
	"time"
)

// Rol values for User.Role.
const (
	RolEditor        = "editor"
	RolAdministrador = "administrador"
)

// User is an application account. Editors execute assigned procesos and
// cambios; administradores additionally manage users and see everything.
type User struct {
	ID       uint   `gorm:"primaryKey"                json:"id"`
	Name     string `gorm:"size:255;index"            json:"name"`
	Email    string `gorm:"size:255;uniqueIndex"      json:"email"`
	Password string `gorm:"size:255"                  json:"-"`
	Role     string `gorm:"size:32;default:editor"    json:"role"`

	Procesos []Proceso `gorm:"foreignKey:EditorID" json:"-"`
	Cambios  []Cambio  `gorm:"foreignKey:EditorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the administrador role.
func (u *User) IsAdmin() bool {
	return u.Role == RolAdministrador
}
