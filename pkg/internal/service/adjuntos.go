package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
	nlog "github.com/grupovilla/gestprocesos/pkg/log"
)

// BlobStore is the slice of the object store the attachment logic needs.
// The MinIO client satisfies it; tests swap in an in-memory fake.
type BlobStore interface {
	Put(ctx context.Context, namespace, filename string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// Attachment limits, matching the upload form rules.
const (
	MaxArchivosPorLote = 10
	MaxArchivoBytes    = 10 << 20 // 10 MB
)

// Blob namespaces per owning table.
const (
	NamespaceProcesoDocs = "procesos/documentos"
	NamespaceCambioDocs  = "cambios/documentos"
)

var extensionesPermitidas = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".zip":  true,
}

// validateArchivos checks the whole batch before any blob is written: at
// most MaxArchivosPorLote files, each within MaxArchivoBytes and with an
// allowed extension. One bad file rejects the batch.
func validateArchivos(files []types.ArchivoSubida) error {
	if len(files) == 0 {
		return nil
	}

	if len(files) > MaxArchivosPorLote {
		return errs.NewValidation("archivos", fmt.Sprintf("at most %d files per request", MaxArchivosPorLote))
	}

	fields := map[string]string{}

	for i, f := range files {
		key := fmt.Sprintf("archivos[%d]", i)

		ext := strings.ToLower(filepath.Ext(f.Nombre))
		if !extensionesPermitidas[ext] {
			fields[key] = fmt.Sprintf("extension %q not allowed (pdf, doc, docx, zip)", ext)
			continue
		}

		if f.Size > MaxArchivoBytes {
			fields[key] = fmt.Sprintf("file exceeds %d bytes", MaxArchivoBytes)
		}
	}

	if len(fields) > 0 {
		return errs.NewValidationFields(fields)
	}

	return nil
}

// storedBlob is one blob written during a batch, kept for row creation and
// for compensation when a later write fails.
type storedBlob struct {
	ruta   string
	nombre string
}

// storeArchivos writes the already-validated batch to the blob store. When
// one write fails, every blob written so far is removed before returning.
func storeArchivos(ctx context.Context, blobs BlobStore, namespace string, files []types.ArchivoSubida) ([]storedBlob, error) {
	stored := make([]storedBlob, 0, len(files))

	for _, f := range files {
		r, err := f.Open()
		if err != nil {
			removeBlobs(ctx, blobs, stored)
			return nil, fmt.Errorf("open %s: %w", f.Nombre, err)
		}

		ruta, err := blobs.Put(ctx, namespace, f.Nombre, r, f.Size, f.ContentType)
		_ = r.Close()

		if err != nil {
			removeBlobs(ctx, blobs, stored)
			return nil, fmt.Errorf("store %s: %w", f.Nombre, err)
		}

		stored = append(stored, storedBlob{ruta: ruta, nombre: f.Nombre})
	}

	return stored, nil
}

// removeBlobs best-effort removes a set of blobs; failures are logged so a
// janitor can pick the orphans up later.
func removeBlobs(ctx context.Context, blobs BlobStore, stored []storedBlob) {
	for _, s := range stored {
		if err := blobs.Remove(ctx, s.ruta); err != nil {
			nlog.Logger().Error().Err(err).Str("ruta", s.ruta).Msg("orphan blob left behind")
		}
	}
}

// attachToProceso validates, stores and records a batch of files for a
// proceso inside the given transaction.
func attachToProceso(ctx context.Context, tx *gorm.DB, blobs BlobStore, procesoID uint, files []types.ArchivoSubida) error {
	if len(files) == 0 {
		return nil
	}

	if err := validateArchivos(files); err != nil {
		return err
	}

	stored, err := storeArchivos(ctx, blobs, NamespaceProcesoDocs, files)
	if err != nil {
		return err
	}

	rows := make([]model.Documento, 0, len(stored))
	for _, s := range stored {
		rows = append(rows, model.Documento{
			ProcesoID:      procesoID,
			Ruta:           s.ruta,
			NombreOriginal: s.nombre,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		removeBlobs(ctx, blobs, stored)
		return fmt.Errorf("create documentos: %w", err)
	}

	return nil
}

// attachToCambio is attachToProceso for the cambio attachment table.
func attachToCambio(ctx context.Context, tx *gorm.DB, blobs BlobStore, cambioID uint, files []types.ArchivoSubida) error {
	if len(files) == 0 {
		return nil
	}

	if err := validateArchivos(files); err != nil {
		return err
	}

	stored, err := storeArchivos(ctx, blobs, NamespaceCambioDocs, files)
	if err != nil {
		return err
	}

	rows := make([]model.CambioDocumento, 0, len(stored))
	for _, s := range stored {
		rows = append(rows, model.CambioDocumento{
			CambioID:       cambioID,
			Ruta:           s.ruta,
			NombreOriginal: s.nombre,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		removeBlobs(ctx, blobs, stored)
		return fmt.Errorf("create cambio documentos: %w", err)
	}

	return nil
}

// detachAdjunto removes one attachment: blob first (a missing blob is not
// an error), then the row. db may be a transaction.
func detachAdjunto(ctx context.Context, db *gorm.DB, blobs BlobStore, adj model.Adjunto, row any) error {
	if err := blobs.Remove(ctx, adj.BlobRuta()); err != nil {
		return fmt.Errorf("remove blob %s: %w", adj.BlobRuta(), err)
	}

	if err := db.Delete(row, adj.AdjuntoID()).Error; err != nil {
		return fmt.Errorf("delete adjunto row %d: %w", adj.AdjuntoID(), err)
	}

	return nil
}
