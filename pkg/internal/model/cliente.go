package model

import (
	"time"
)

// Cliente is a client on whose behalf procesos are executed. DNI and correo
// are unique across the table.
type Cliente struct {
	ID       uint   `gorm:"primaryKey"           json:"id"`
	DNI      string `gorm:"size:255;uniqueIndex" json:"dni"`
	Nombre   string `gorm:"size:255;index"       json:"nombre"`
	Correo   string `gorm:"size:255;uniqueIndex" json:"correo"`
	Telefono string `gorm:"size:20"              json:"telefono"`

	Procesos []Proceso `gorm:"foreignKey:ClienteID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
