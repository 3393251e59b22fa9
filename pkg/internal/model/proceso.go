package model

import (
	"time"
)

// Proceso is a tracked unit of work for a cliente, assigned to an editor,
// with a lifecycle estado and a date range. FechaFinal is optional but must
// not precede FechaInicio.
type Proceso struct {
	ID          uint       `gorm:"primaryKey"              json:"id"`
	ClienteID   uint       `gorm:"index;not null"          json:"cliente_id"`
	Tipo        string     `gorm:"size:255"                json:"tipo"`
	Descripcion string     `gorm:"type:text"               json:"descripcion"`
	Estado      Estado     `gorm:"size:32;index;default:Pendiente" json:"estado"`
	FechaInicio time.Time  `gorm:"index"                   json:"fecha_inicio"`
	FechaFinal  *time.Time `gorm:"index"                   json:"fecha_final"`
	EditorID    uint       `gorm:"index;not null"          json:"editor_id"`

	Cliente    *Cliente    `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Editor     *User       `gorm:"foreignKey:EditorID"  json:"editor,omitempty"`
	Documentos []Documento `gorm:"foreignKey:ProcesoID" json:"documentos,omitempty"`
	Cambios    []Cambio    `gorm:"foreignKey:ProcesoID" json:"cambios,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
