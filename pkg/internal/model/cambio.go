package model

import (
	"time"
)

// Cambio is a status-tracked milestone inside a Proceso, with its own
// editor, fecha and attachments.
type Cambio struct {
	ID          uint      `gorm:"primaryKey"     json:"id"`
	ProcesoID   uint      `gorm:"index;not null" json:"proceso_id"`
	Titulo      string    `gorm:"size:255"       json:"titulo"`
	Descripcion string    `gorm:"type:text"      json:"descripcion"`
	Estado      Estado    `gorm:"size:32;index;default:Pendiente" json:"estado"`
	Fecha       time.Time `gorm:"index"          json:"fecha"`
	EditorID    uint      `gorm:"index;not null" json:"editor_id"`

	Proceso    *Proceso          `gorm:"foreignKey:ProcesoID" json:"proceso,omitempty"`
	Editor     *User             `gorm:"foreignKey:EditorID"  json:"editor,omitempty"`
	Documentos []CambioDocumento `gorm:"foreignKey:CambioID"  json:"documentos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
