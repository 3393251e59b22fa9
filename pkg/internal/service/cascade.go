package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/model"
)

// Cascade deletion shared by the cliente, proceso and cambio services.
// Blobs are removed inside the transaction, before it commits, so a failed
// blob delete aborts the whole cascade and leaves the rows in place.

// deleteCambioCascade removes a cambio with its attachments.
func deleteCambioCascade(ctx context.Context, tx *gorm.DB, blobs BlobStore, cambioID uint) error {
	var docs []model.CambioDocumento
	if err := tx.Where("cambio_id = ?", cambioID).Find(&docs).Error; err != nil {
		return fmt.Errorf("load cambio documentos: %w", err)
	}

	for _, d := range docs {
		if err := blobs.Remove(ctx, d.Ruta); err != nil {
			return fmt.Errorf("remove blob %s: %w", d.Ruta, err)
		}
	}

	if err := tx.Where("cambio_id = ?", cambioID).Delete(&model.CambioDocumento{}).Error; err != nil {
		return fmt.Errorf("delete cambio documentos: %w", err)
	}

	if err := tx.Delete(&model.Cambio{}, cambioID).Error; err != nil {
		return fmt.Errorf("delete cambio: %w", err)
	}

	return nil
}

// deleteProcesoCascade removes a proceso with its cambios and attachments.
func deleteProcesoCascade(ctx context.Context, tx *gorm.DB, blobs BlobStore, procesoID uint) error {
	var cambios []model.Cambio
	if err := tx.Where("proceso_id = ?", procesoID).Find(&cambios).Error; err != nil {
		return fmt.Errorf("load cambios: %w", err)
	}

	for _, c := range cambios {
		if err := deleteCambioCascade(ctx, tx, blobs, c.ID); err != nil {
			return err
		}
	}

	var docs []model.Documento
	if err := tx.Where("proceso_id = ?", procesoID).Find(&docs).Error; err != nil {
		return fmt.Errorf("load documentos: %w", err)
	}

	for _, d := range docs {
		if err := blobs.Remove(ctx, d.Ruta); err != nil {
			return fmt.Errorf("remove blob %s: %w", d.Ruta, err)
		}
	}

	if err := tx.Where("proceso_id = ?", procesoID).Delete(&model.Documento{}).Error; err != nil {
		return fmt.Errorf("delete documentos: %w", err)
	}

	if err := tx.Delete(&model.Proceso{}, procesoID).Error; err != nil {
		return fmt.Errorf("delete proceso: %w", err)
	}

	return nil
}

// deleteClienteCascade removes a cliente with every proceso hanging from it.
func deleteClienteCascade(ctx context.Context, tx *gorm.DB, blobs BlobStore, clienteID uint) error {
	var procesos []model.Proceso
	if err := tx.Where("cliente_id = ?", clienteID).Find(&procesos).Error; err != nil {
		return fmt.Errorf("load procesos: %w", err)
	}

	for _, p := range procesos {
		if err := deleteProcesoCascade(ctx, tx, blobs, p.ID); err != nil {
			return err
		}
	}

	if err := tx.Delete(&model.Cliente{}, clienteID).Error; err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}

	return nil
}
