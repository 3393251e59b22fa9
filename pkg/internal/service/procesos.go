package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
	"github.com/grupovilla/gestprocesos/pkg/internal/storage/mq"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
	nlog "github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/queue"
)

// ProcesoService handles proceso CRUD, the calendar feed and the creation
// event feeding WhatsApp notifications.
type ProcesoService struct {
	db    *gorm.DB
	blobs BlobStore
	mq    *mq.Client
}

// NewProcesoService builds the service from the request context.
func NewProcesoService(c context.Context) *ProcesoService {
	d := depsFromContext(c)

	return &ProcesoService{db: d.db, blobs: d.blobs, mq: d.mq}
}

// procesoListSpec qualifies every column because search joins clientes.
var procesoListSpec = query.Spec{
	DefaultSort:      "fecha_final",
	DefaultDirection: query.Asc,
	Sortable: map[string]string{
		"id":           "procesos.id",
		"tipo":         "procesos.tipo",
		"estado":       "procesos.estado",
		"fecha_inicio": "procesos.fecha_inicio",
		"fecha_final":  "procesos.fecha_final",
	},
	SecondarySort: "procesos.fecha_final",
	SearchScope: func(db *gorm.DB, search string) *gorm.DB {
		like := "%" + strings.ToLower(search) + "%"

		return db.Joins("JOIN clientes ON clientes.id = procesos.cliente_id").
			Where("LOWER(clientes.nombre) LIKE ?", like)
	},
	EstadoColumn: "procesos.estado",
	EditorColumn: "procesos.editor_id",
}

// scopeToEditor narrows listings to the caller's own assignments unless the
// caller is an administrador.
func scopeToEditor(db *gorm.DB, ident types.Identity, column string) *gorm.DB {
	if ident.IsAdmin() {
		return db
	}

	return db.Where(column+" = ?", ident.UserID)
}

// List returns one page of procesos with cliente and editor preloaded.
func (s *ProcesoService) List(ctx context.Context, ident types.Identity, params types.ProcesoListParams) (*query.Page[model.Proceso], error) {
	db := s.db.WithContext(ctx).Model(&model.Proceso{}).
		Preload("Cliente").Preload("Editor")
	db = scopeToEditor(db, ident, "procesos.editor_id")

	return query.Paginate[model.Proceso](db, procesoListSpec, params.Params)
}

// Get loads one proceso with its full tree.
func (s *ProcesoService) Get(ctx context.Context, ident types.Identity, id uint) (*model.Proceso, error) {
	db := scopeToEditor(s.db.WithContext(ctx), ident, "editor_id")

	return loadProcesoTree(db, id)
}

// loadProcesoTree loads a proceso with every association preloaded. Scoping,
// when wanted, is applied by the caller.
func loadProcesoTree(db *gorm.DB, id uint) (*model.Proceso, error) {
	db = db.
		Preload("Cliente").Preload("Editor").Preload("Documentos").
		Preload("Cambios", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha desc")
		}).
		Preload("Cambios.Editor").Preload("Cambios.Documentos")

	var proceso model.Proceso
	if err := db.First(&proceso, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("proceso", id)
		}

		return nil, fmt.Errorf("load proceso: %w", err)
	}

	return &proceso, nil
}

// parseFechas validates the date pair: fecha_final, when present, must not
// precede fecha_inicio.
func parseFechas(inicio, final string) (time.Time, *time.Time, error) {
	fi, err := types.ParseFecha(inicio)
	if err != nil {
		return time.Time{}, nil, errs.NewValidation("fecha_inicio", "invalid date")
	}

	if final == "" {
		return fi, nil, nil
	}

	ff, err := types.ParseFecha(final)
	if err != nil {
		return time.Time{}, nil, errs.NewValidation("fecha_final", "invalid date")
	}

	if ff.Before(fi) {
		return time.Time{}, nil, errs.NewValidation("fecha_final", "must not precede fecha_inicio")
	}

	return fi, &ff, nil
}

// checkRefs verifies the cliente and editor rows exist.
func (s *ProcesoService) checkRefs(ctx context.Context, clienteID, editorID uint) error {
	fields := map[string]string{}

	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", clienteID).Count(&n).Error; err != nil {
		return fmt.Errorf("check cliente: %w", err)
	}

	if n == 0 {
		fields["cliente_id"] = "cliente does not exist"
	}

	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", editorID).Count(&n).Error; err != nil {
		return fmt.Errorf("check editor: %w", err)
	}

	if n == 0 {
		fields["editor_id"] = "editor does not exist"
	}

	if len(fields) > 0 {
		return errs.NewValidationFields(fields)
	}

	return nil
}

// Create registers a proceso, stores its attachments in the same
// transaction and publishes the creation event after commit.
func (s *ProcesoService) Create(ctx context.Context, req *types.CreateProcesoRequest, files []types.ArchivoSubida) (*model.Proceso, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := validateArchivos(files); err != nil {
		return nil, err
	}

	if err := s.checkRefs(ctx, req.ClienteID, req.EditorID); err != nil {
		return nil, err
	}

	fi, ff, err := parseFechas(req.FechaInicio, req.FechaFinal)
	if err != nil {
		return nil, err
	}

	proceso := model.Proceso{
		ClienteID:   req.ClienteID,
		Tipo:        req.Tipo,
		Descripcion: req.Descripcion,
		Estado:      model.Estado(req.Estado),
		FechaInicio: fi,
		FechaFinal:  ff,
		EditorID:    req.EditorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&proceso).Error; err != nil {
			return fmt.Errorf("create proceso: %w", err)
		}

		return attachToProceso(ctx, tx, s.blobs, proceso.ID, files)
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, &proceso)

	return &proceso, nil
}

// publishCreated emits gp.proceso.created. Event delivery is best effort;
// a bus failure never fails the request.
func (s *ProcesoService) publishCreated(ctx context.Context, p *model.Proceso) {
	if s.mq == nil {
		return
	}

	msg, err := queue.NewWatermillMessage(queue.TopicProcesoCreated, queue.ProcesoCreatedPayload{
		ProcesoID: p.ID,
		ClienteID: p.ClienteID,
		EditorID:  p.EditorID,
	}, queue.WithProducer("gestprocesos"))
	if err == nil {
		err = s.mq.Publish(ctx, queue.TopicProcesoCreated, msg)
	}

	if err != nil {
		nlog.Logger().Warn().Err(err).Uint("proceso_id", p.ID).Msg("publish proceso created failed")
	}
}

// Update replaces the mutable fields and optionally attaches more files.
func (s *ProcesoService) Update(ctx context.Context, ident types.Identity, id uint, req *types.UpdateProcesoRequest, files []types.ArchivoSubida) (*model.Proceso, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := validateArchivos(files); err != nil {
		return nil, err
	}

	proceso, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(ctx, req.ClienteID, req.EditorID); err != nil {
		return nil, err
	}

	fi, ff, err := parseFechas(req.FechaInicio, req.FechaFinal)
	if err != nil {
		return nil, err
	}

	proceso.ClienteID = req.ClienteID
	proceso.Tipo = req.Tipo
	proceso.Descripcion = req.Descripcion
	proceso.Estado = model.Estado(req.Estado)
	proceso.FechaInicio = fi
	proceso.FechaFinal = ff
	proceso.EditorID = req.EditorID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Cliente", "Editor", "Documentos", "Cambios").Save(proceso).Error; err != nil {
			return fmt.Errorf("update proceso: %w", err)
		}

		return attachToProceso(ctx, tx, s.blobs, proceso.ID, files)
	})
	if err != nil {
		return nil, err
	}

	// Reassigning editor_id may move the proceso out of the caller's own
	// scope, so the readback after a committed write is unscoped.
	return loadProcesoTree(s.db.WithContext(ctx), id)
}

// Delete removes a proceso with its cambios and attachments.
func (s *ProcesoService) Delete(ctx context.Context, ident types.Identity, id uint) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProcesoCascade(ctx, tx, s.blobs, id)
	})
}

// Calendar projects the caller's procesos into calendar events.
func (s *ProcesoService) Calendar(ctx context.Context, ident types.Identity) ([]types.CalendarEvent, error) {
	db := s.db.WithContext(ctx).Preload("Cliente").Preload("Editor")
	db = scopeToEditor(db, ident, "editor_id")

	var procesos []model.Proceso
	if err := db.Order("fecha_inicio asc").Find(&procesos).Error; err != nil {
		return nil, fmt.Errorf("load calendar procesos: %w", err)
	}

	events := make([]types.CalendarEvent, 0, len(procesos))
	for i := range procesos {
		events = append(events, types.NewCalendarEvent(&procesos[i]))
	}

	return events, nil
}

// DeleteDocumento removes a single attachment from a proceso, blob first.
func (s *ProcesoService) DeleteDocumento(ctx context.Context, ident types.Identity, procesoID, documentoID uint) error {
	if _, err := s.Get(ctx, ident, procesoID); err != nil {
		return err
	}

	var doc model.Documento
	err := s.db.WithContext(ctx).
		Where("proceso_id = ?", procesoID).
		First(&doc, documentoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("documento", documentoID)
		}

		return fmt.Errorf("load documento: %w", err)
	}

	return detachAdjunto(ctx, s.db.WithContext(ctx), s.blobs, doc, &model.Documento{})
}
