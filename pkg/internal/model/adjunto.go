package model

import (
	"time"
)

// Adjunto is the shared view over the two attachment tables. Documento and
// CambioDocumento stay as parallel concrete tables; code that only needs the
// blob path and original name works against this interface.
type Adjunto interface {
	AdjuntoID() uint
	BlobRuta() string
	OriginalName() string
}

// Documento is a stored file owned by a Proceso. The row never outlives its
// blob: deletion removes the blob first (missing blobs are tolerated).
type Documento struct {
	ID             uint   `gorm:"primaryKey"     json:"id"`
	ProcesoID      uint   `gorm:"index;not null" json:"proceso_id"`
	Ruta           string `gorm:"size:1024"      json:"ruta"`
	NombreOriginal string `gorm:"size:512"       json:"nombre_original"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Documento) AdjuntoID() uint      { return d.ID }
func (d Documento) BlobRuta() string     { return d.Ruta }
func (d Documento) OriginalName() string { return d.NombreOriginal }

// CambioDocumento is a stored file owned by a Cambio, with the same blob
// ownership rules as Documento.
type CambioDocumento struct {
	ID             uint   `gorm:"primaryKey"     json:"id"`
	CambioID       uint   `gorm:"index;not null" json:"cambio_id"`
	Ruta           string `gorm:"size:1024"      json:"ruta"`
	NombreOriginal string `gorm:"size:512"       json:"nombre_original"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d CambioDocumento) AdjuntoID() uint      { return d.ID }
func (d CambioDocumento) BlobRuta() string     { return d.Ruta }
func (d CambioDocumento) OriginalName() string { return d.NombreOriginal }

// AllModels is the migration set, ordered parents before children.
func AllModels() []any {
	return []any{
		&User{},
		&Cliente{},
		&Proceso{},
		&Documento{},
		&Cambio{},
		&CambioDocumento{},
	}
}
