package service

import (
	"context"
	"testing"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

func TestUserCreateHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}
	ctx := context.Background()

	user, err := svc.Create(ctx, &types.CreateUserRequest{
		Name:     "Ana Castro",
		Email:    "ana@despacho.hn",
		Password: "secreto-largo",
		Role:     model.RolEditor,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if user.Password == "secreto-largo" {
		t.Error("password stored in plaintext")
	}

	if !svc.CheckPassword(user, "secreto-largo") {
		t.Error("stored hash does not verify the original password")
	}

	if svc.CheckPassword(user, "otra-clave") {
		t.Error("wrong password verified")
	}
}

func TestUserCreateValidatesRole(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}

	_, err := svc.Create(context.Background(), &types.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@despacho.hn",
		Password: "secreto-largo",
		Role:     "superuser",
	})

	ve, ok := errs.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, present := ve.Fields["role"]; !present {
		t.Errorf("expected role flagged, got %v", ve.Fields)
	}
}

func TestUserEmailUnique(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}
	ctx := context.Background()

	if _, err := svc.Create(ctx, &types.CreateUserRequest{
		Name: "Ana", Email: "ana@despacho.hn", Password: "secreto-largo", Role: model.RolEditor,
	}); err != nil {
		t.Fatalf("create first: %v", err)
	}

	_, err := svc.Create(ctx, &types.CreateUserRequest{
		Name: "Otra Ana", Email: "ana@despacho.hn", Password: "secreto-largo", Role: model.RolEditor,
	})
	if _, ok := errs.AsValidation(err); !ok {
		t.Errorf("expected validation error for duplicate email, got %v", err)
	}
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}
	ctx := context.Background()

	user, err := svc.Create(ctx, &types.CreateUserRequest{
		Name: "Ana", Email: "ana@despacho.hn", Password: "secreto-largo", Role: model.RolEditor,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := svc.Update(ctx, user.ID, &types.UpdateUserRequest{
		Name: "Ana Castro", Email: "ana@despacho.hn", Role: model.RolAdministrador,
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}

	if updated.Role != model.RolAdministrador {
		t.Errorf("expected role updated, got %s", updated.Role)
	}

	if !svc.CheckPassword(updated, "secreto-largo") {
		t.Error("empty password on update must keep the stored hash")
	}

	// A new password replaces the hash.
	updated, err = svc.Update(ctx, user.ID, &types.UpdateUserRequest{
		Name: "Ana Castro", Email: "ana@despacho.hn", Password: "clave-nueva-123", Role: model.RolAdministrador,
	})
	if err != nil {
		t.Fatalf("update password: %v", err)
	}

	if !svc.CheckPassword(updated, "clave-nueva-123") || svc.CheckPassword(updated, "secreto-largo") {
		t.Error("password change did not take effect")
	}
}

func TestUserDeleteBlockedWhileAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)

	err := svc.Delete(ctx, editor.ID)
	if _, ok := errs.AsConflict(err); !ok {
		t.Fatalf("expected conflict while procesos assigned, got %v", err)
	}

	// Even a terminal proceso keeps the account referenced.
	if err := db.Model(&model.Proceso{}).Where("id = ?", proceso.ID).
		Update("estado", model.EstadoEntregado).Error; err != nil {
		t.Fatalf("update estado: %v", err)
	}

	if err := svc.Delete(ctx, editor.ID); err == nil {
		t.Fatal("expected conflict for referenced user")
	}

	if err := db.Delete(&model.Proceso{}, proceso.ID).Error; err != nil {
		t.Fatalf("remove proceso: %v", err)
	}

	if err := svc.Delete(ctx, editor.ID); err != nil {
		t.Errorf("expected delete after reassignment, got %v", err)
	}

	if n := countRows(t, db, &model.User{}); n != 0 {
		t.Errorf("expected user removed, %d left", n)
	}
}

func TestUserListCountsActiveWork(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")

	otro := seedUser(t, db, "Beto", "beto@despacho.hn")
	libre := seedUser(t, db, "Carla", "carla@despacho.hn")

	activo := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoEnEjecucion, nil)
	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoEntregado, nil)

	seedCambio(t, db, activo.ID, editor.ID, model.EstadoPendiente)
	seedCambio(t, db, activo.ID, editor.ID, model.EstadoFinalizado)

	seedProceso(t, db, cliente.ID, otro.ID, model.EstadoPendiente, nil)
	seedProceso(t, db, cliente.ID, otro.ID, model.EstadoEnRevision, nil)

	page, err := svc.List(ctx, types.UserListParams{})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}

	if len(page.Items) != 3 {
		t.Fatalf("expected 3 users, got %d", len(page.Items))
	}

	byID := map[uint]types.UserWithCounts{}
	for _, it := range page.Items {
		byID[it.ID] = it
	}

	if got := byID[editor.ID]; got.ProcesosActivos != 1 || got.CambiosActivos != 1 {
		t.Errorf("terminal work must not count: procesos=%d cambios=%d", got.ProcesosActivos, got.CambiosActivos)
	}

	if got := byID[otro.ID]; got.ProcesosActivos != 2 || got.CambiosActivos != 0 {
		t.Errorf("counts must group per editor: procesos=%d cambios=%d", got.ProcesosActivos, got.CambiosActivos)
	}

	if got := byID[libre.ID]; got.ProcesosActivos != 0 || got.CambiosActivos != 0 {
		t.Errorf("idle user must report zero work: procesos=%d cambios=%d", got.ProcesosActivos, got.CambiosActivos)
	}
}

func TestUserFindByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db}
	ctx := context.Background()

	seedUser(t, db, "Ana", "ana@despacho.hn")

	user, err := svc.FindByEmail(ctx, "ana@despacho.hn")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}

	if user.Name != "Ana" {
		t.Errorf("unexpected user %+v", user)
	}

	if _, err := svc.FindByEmail(ctx, "nadie@despacho.hn"); !errs.IsNotFound(err) {
		t.Errorf("expected not found for unknown email, got %v", err)
	}
}
