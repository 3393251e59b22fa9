package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// UserService handles account administration. Every operation here sits
// behind the administrador gate except FindByEmail, which the identity
// middleware uses.
type UserService struct {
	db *gorm.DB
}

// NewUserService builds the service from the request context.
func NewUserService(c context.Context) *UserService {
	d := depsFromContext(c)

	return &UserService{db: d.db}
}

var userListSpec = query.Spec{
	DefaultSort:      "name",
	DefaultDirection: query.Asc,
	Sortable: map[string]string{
		"id":    "id",
		"name":  "name",
		"email": "email",
		"role":  "role",
	},
	SearchColumns: []string{"name", "email"},
}

// List returns one page of users with their active work counts.
func (s *UserService) List(ctx context.Context, params types.UserListParams) (*query.Page[types.UserWithCounts], error) {
	db := s.db.WithContext(ctx).Model(&model.User{})

	page, err := query.Paginate[model.User](db, userListSpec, params.Params)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(page.Items))
	for _, u := range page.Items {
		ids = append(ids, u.ID)
	}

	procesos, err := s.activeCounts(ctx, &model.Proceso{}, ids)
	if err != nil {
		return nil, fmt.Errorf("count procesos activos: %w", err)
	}

	cambios, err := s.activeCounts(ctx, &model.Cambio{}, ids)
	if err != nil {
		return nil, fmt.Errorf("count cambios activos: %w", err)
	}

	items := make([]types.UserWithCounts, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, types.UserWithCounts{
			User:            u,
			ProcesosActivos: procesos[u.ID],
			CambiosActivos:  cambios[u.ID],
		})
	}

	return &query.Page[types.UserWithCounts]{
		Items:      items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Filters:    page.Filters,
	}, nil
}

// activeCounts counts the non-terminal rows of one assignable table, grouped
// by editor, for a page worth of users in a single query.
func (s *UserService) activeCounts(ctx context.Context, m any, userIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EditorID uint
		N        int64
	}

	err := s.db.WithContext(ctx).Model(m).
		Select("editor_id, COUNT(*) AS n").
		Where("editor_id IN ? AND estado NOT IN ?", userIDs, model.EstadosTerminales).
		Group("editor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.EditorID] = r.N
	}

	return counts, nil
}

// Get loads one user.
func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user", id)
		}

		return nil, fmt.Errorf("load user: %w", err)
	}

	return &user, nil
}

// FindByEmail resolves the account behind an authenticated email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("load user by email: %w", err)
	}

	return &user, nil
}

// checkEmailUnique enforces email uniqueness, excluding excludeID.
func (s *UserService) checkEmailUnique(ctx context.Context, email string, excludeID uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).Count(&n).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}

	if n > 0 {
		return errs.NewValidation("email", "already registered")
	}

	return nil
}

// Create registers an account with a bcrypt password hash.
func (s *UserService) Create(ctx context.Context, req *types.CreateUserRequest) (*model.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := s.checkEmailUnique(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Update replaces the mutable fields of an account; an empty password keeps
// the stored hash.
func (s *UserService) Update(ctx context.Context, id uint, req *types.UpdateUserRequest) (*model.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailUnique(ctx, req.Email, id); err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}

		user.Password = string(hash)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// Delete removes an account. A user still assigned procesos or cambios
// cannot be removed; reassign their work first.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Proceso{}).Where("editor_id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("count assigned procesos: %w", err)
	}

	if n > 0 {
		return errs.NewConflict("user", "still assigned procesos; reassign them first")
	}

	if err := s.db.WithContext(ctx).Model(&model.Cambio{}).Where("editor_id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("count assigned cambios: %w", err)
	}

	if n > 0 {
		return errs.NewConflict("user", "still assigned cambios; reassign them first")
	}

	return s.db.WithContext(ctx).Delete(user).Error
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *UserService) CheckPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
