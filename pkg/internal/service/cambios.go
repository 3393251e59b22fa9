package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// CambioService handles the milestones inside a proceso, including their
// attachments.
type CambioService struct {
	db    *gorm.DB
	blobs BlobStore
}

// NewCambioService builds the service from the request context.
func NewCambioService(c context.Context) *CambioService {
	d := depsFromContext(c)

	return &CambioService{db: d.db, blobs: d.blobs}
}

var cambioListSpec = query.Spec{
	DefaultSort:      "fecha",
	DefaultDirection: query.Desc,
	Sortable: map[string]string{
		"id":     "id",
		"titulo": "titulo",
		"estado": "estado",
		"fecha":  "fecha",
	},
	SearchColumns: []string{"titulo"},
}

// getProceso loads the owning proceso with scoping applied, so a non-admin
// can only reach cambios under their own procesos.
func (s *CambioService) getProceso(ctx context.Context, ident types.Identity, procesoID uint) (*model.Proceso, error) {
	db := s.db.WithContext(ctx)
	db = scopeToEditor(db, ident, "editor_id")

	var proceso model.Proceso
	if err := db.First(&proceso, procesoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("proceso", procesoID)
		}

		return nil, fmt.Errorf("load proceso: %w", err)
	}

	return &proceso, nil
}

// ListByProceso returns one page of a proceso's cambios.
func (s *CambioService) ListByProceso(ctx context.Context, ident types.Identity, procesoID uint, params types.CambioListParams) (*query.Page[model.Cambio], error) {
	if _, err := s.getProceso(ctx, ident, procesoID); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx).Model(&model.Cambio{}).
		Where("proceso_id = ?", procesoID).
		Preload("Editor").Preload("Documentos")

	return query.Paginate[model.Cambio](db, cambioListSpec, params.Params)
}

// ListGlobal returns one page of cambios across procesos, scoped to the
// caller's own work unless they are an administrador.
func (s *CambioService) ListGlobal(ctx context.Context, ident types.Identity, params types.CambioListParams) (*query.Page[model.Cambio], error) {
	db := s.db.WithContext(ctx).Model(&model.Cambio{}).
		Preload("Editor").Preload("Proceso").Preload("Proceso.Cliente")
	db = scopeToEditor(db, ident, "editor_id")

	return query.Paginate[model.Cambio](db, cambioListSpec, params.Params)
}

// Get loads one cambio under a proceso.
func (s *CambioService) Get(ctx context.Context, ident types.Identity, procesoID, cambioID uint) (*model.Cambio, error) {
	if _, err := s.getProceso(ctx, ident, procesoID); err != nil {
		return nil, err
	}

	var cambio model.Cambio
	err := s.db.WithContext(ctx).
		Preload("Editor").Preload("Documentos").
		Where("proceso_id = ?", procesoID).
		First(&cambio, cambioID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("cambio", cambioID)
		}

		return nil, fmt.Errorf("load cambio: %w", err)
	}

	return &cambio, nil
}

// checkEditor verifies the editor row exists.
func (s *CambioService) checkEditor(ctx context.Context, editorID uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", editorID).Count(&n).Error; err != nil {
		return fmt.Errorf("check editor: %w", err)
	}

	if n == 0 {
		return errs.NewValidation("editor_id", "editor does not exist")
	}

	return nil
}

// Create registers a cambio under a proceso, with its attachments in the
// same transaction.
func (s *CambioService) Create(ctx context.Context, ident types.Identity, procesoID uint, req *types.CreateCambioRequest, files []types.ArchivoSubida) (*model.Cambio, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := validateArchivos(files); err != nil {
		return nil, err
	}

	if _, err := s.getProceso(ctx, ident, procesoID); err != nil {
		return nil, err
	}

	if err := s.checkEditor(ctx, req.EditorID); err != nil {
		return nil, err
	}

	fecha, err := types.ParseFecha(req.Fecha)
	if err != nil {
		return nil, errs.NewValidation("fecha", "invalid date")
	}

	cambio := model.Cambio{
		ProcesoID:   procesoID,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Estado:      model.Estado(req.Estado),
		Fecha:       fecha,
		EditorID:    req.EditorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cambio).Error; err != nil {
			return fmt.Errorf("create cambio: %w", err)
		}

		return attachToCambio(ctx, tx, s.blobs, cambio.ID, files)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, ident, procesoID, cambio.ID)
}

// Update replaces the mutable fields of a cambio and optionally attaches
// more files. The owning proceso and the editor stay fixed.
func (s *CambioService) Update(ctx context.Context, ident types.Identity, procesoID, cambioID uint, req *types.UpdateCambioRequest, files []types.ArchivoSubida) (*model.Cambio, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := validateArchivos(files); err != nil {
		return nil, err
	}

	cambio, err := s.Get(ctx, ident, procesoID, cambioID)
	if err != nil {
		return nil, err
	}

	fecha, err := types.ParseFecha(req.Fecha)
	if err != nil {
		return nil, errs.NewValidation("fecha", "invalid date")
	}

	cambio.Titulo = req.Titulo
	cambio.Descripcion = req.Descripcion
	cambio.Estado = model.Estado(req.Estado)
	cambio.Fecha = fecha

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Proceso", "Editor", "Documentos").Save(cambio).Error; err != nil {
			return fmt.Errorf("update cambio: %w", err)
		}

		return attachToCambio(ctx, tx, s.blobs, cambio.ID, files)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, ident, procesoID, cambioID)
}

// Delete removes a cambio with its attachments.
func (s *CambioService) Delete(ctx context.Context, ident types.Identity, procesoID, cambioID uint) error {
	if _, err := s.Get(ctx, ident, procesoID, cambioID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCambioCascade(ctx, tx, s.blobs, cambioID)
	})
}

// DeleteDocumento removes a single attachment from a cambio, blob first.
func (s *CambioService) DeleteDocumento(ctx context.Context, ident types.Identity, procesoID, cambioID, documentoID uint) error {
	if _, err := s.Get(ctx, ident, procesoID, cambioID); err != nil {
		return err
	}

	var doc model.CambioDocumento
	err := s.db.WithContext(ctx).
		Where("cambio_id = ?", cambioID).
		First(&doc, documentoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("documento", documentoID)
		}

		return fmt.Errorf("load cambio documento: %w", err)
	}

	return detachAdjunto(ctx, s.db.WithContext(ctx), s.blobs, doc, &model.CambioDocumento{})
}
