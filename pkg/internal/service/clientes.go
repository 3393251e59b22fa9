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

// ClienteService handles cliente CRUD plus the cascade that removes a
// cliente's whole tree of procesos, cambios and attachments.
type ClienteService struct {
	db    *gorm.DB
	blobs BlobStore
}

// NewClienteService builds the service from the request context.
func NewClienteService(c context.Context) *ClienteService {
	d := depsFromContext(c)

	return &ClienteService{db: d.db, blobs: d.blobs}
}

var clienteListSpec = query.Spec{
	DefaultSort:      "id",
	DefaultDirection: query.Desc,
	Sortable: map[string]string{
		"id":     "id",
		"dni":    "dni",
		"nombre": "nombre",
		"correo": "correo",
	},
	SearchColumns: []string{"dni", "nombre", "correo"},
}

// List returns one page of clientes.
func (s *ClienteService) List(ctx context.Context, params types.ClienteListParams) (*query.Page[model.Cliente], error) {
	db := s.db.WithContext(ctx).Model(&model.Cliente{})

	return query.Paginate[model.Cliente](db, clienteListSpec, params.Params)
}

// Get loads one cliente.
func (s *ClienteService) Get(ctx context.Context, id uint) (*model.Cliente, error) {
	var cliente model.Cliente
	if err := s.db.WithContext(ctx).First(&cliente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("cliente", id)
		}

		return nil, fmt.Errorf("load cliente: %w", err)
	}

	return &cliente, nil
}

// checkClienteUnique enforces dni and correo uniqueness, excluding excludeID
// so updates do not collide with the row being updated.
func (s *ClienteService) checkClienteUnique(ctx context.Context, dni, correo string, excludeID uint) error {
	fields := map[string]string{}

	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("dni = ? AND id <> ?", dni, excludeID).Count(&n).Error; err != nil {
		return fmt.Errorf("check dni: %w", err)
	}

	if n > 0 {
		fields["dni"] = "already registered"
	}

	if err := s.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("correo = ? AND id <> ?", correo, excludeID).Count(&n).Error; err != nil {
		return fmt.Errorf("check correo: %w", err)
	}

	if n > 0 {
		fields["correo"] = "already registered"
	}

	if len(fields) > 0 {
		return errs.NewValidationFields(fields)
	}

	return nil
}

// Create registers a cliente.
func (s *ClienteService) Create(ctx context.Context, req *types.CreateClienteRequest) (*model.Cliente, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := s.checkClienteUnique(ctx, req.DNI, req.Correo, 0); err != nil {
		return nil, err
	}

	cliente := model.Cliente{
		DNI:      req.DNI,
		Nombre:   req.Nombre,
		Correo:   req.Correo,
		Telefono: req.Telefono,
	}

	if err := s.db.WithContext(ctx).Create(&cliente).Error; err != nil {
		return nil, fmt.Errorf("create cliente: %w", err)
	}

	return &cliente, nil
}

// Update replaces the mutable fields of a cliente.
func (s *ClienteService) Update(ctx context.Context, id uint, req *types.UpdateClienteRequest) (*model.Cliente, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	cliente, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkClienteUnique(ctx, req.DNI, req.Correo, id); err != nil {
		return nil, err
	}

	cliente.DNI = req.DNI
	cliente.Nombre = req.Nombre
	cliente.Correo = req.Correo
	cliente.Telefono = req.Telefono

	if err := s.db.WithContext(ctx).Save(cliente).Error; err != nil {
		return nil, fmt.Errorf("update cliente: %w", err)
	}

	return cliente, nil
}

// Delete removes a cliente and everything hanging from it in one
// transaction.
func (s *ClienteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteClienteCascade(ctx, tx, s.blobs, id)
	})
}
