package service

import (
	"context"
	"testing"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

func TestClienteCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := &ClienteService{db: db, blobs: newFakeBlobStore()}
	ctx := context.Background()

	created, err := svc.Create(ctx, &types.CreateClienteRequest{
		DNI:      "0801-1990-12345",
		Nombre:   "Inversiones Lempira",
		Correo:   "contacto@lempira.hn",
		Telefono: "9999-8888",
	})
	if err != nil {
		t.Fatalf("create cliente: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get cliente: %v", err)
	}

	if got.Nombre != "Inversiones Lempira" || got.DNI != "0801-1990-12345" {
		t.Errorf("unexpected cliente loaded: %+v", got)
	}

	if _, err := svc.Get(ctx, created.ID+100); !errs.IsNotFound(err) {
		t.Errorf("expected not found for missing cliente, got %v", err)
	}
}

func TestClienteCreateValidatesRequest(t *testing.T) {
	db := newTestDB(t)
	svc := &ClienteService{db: db, blobs: newFakeBlobStore()}

	_, err := svc.Create(context.Background(), &types.CreateClienteRequest{
		DNI:    "",
		Nombre: "Sin DNI",
		Correo: "not-an-email",
	})

	ve, ok := errs.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, present := ve.Fields["dni"]; !present {
		t.Errorf("expected dni failure, got %v", ve.Fields)
	}

	if _, present := ve.Fields["correo"]; !present {
		t.Errorf("expected correo failure, got %v", ve.Fields)
	}
}

func TestClienteUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := &ClienteService{db: db, blobs: newFakeBlobStore()}
	ctx := context.Background()

	first, err := svc.Create(ctx, &types.CreateClienteRequest{
		DNI: "1111", Nombre: "Primero", Correo: "primero@test.hn",
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}

	second, err := svc.Create(ctx, &types.CreateClienteRequest{
		DNI: "2222", Nombre: "Segundo", Correo: "segundo@test.hn",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	// Duplicates on create surface both fields at once.
	_, err = svc.Create(ctx, &types.CreateClienteRequest{
		DNI: "1111", Nombre: "Copia", Correo: "primero@test.hn",
	})

	ve, ok := errs.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error for duplicates, got %v", err)
	}

	if len(ve.Fields) != 2 {
		t.Errorf("expected dni and correo flagged, got %v", ve.Fields)
	}

	// Updating a cliente onto another's dni collides.
	_, err = svc.Update(ctx, second.ID, &types.UpdateClienteRequest{
		DNI: "1111", Nombre: "Segundo", Correo: "segundo@test.hn",
	})
	if _, ok := errs.AsValidation(err); !ok {
		t.Errorf("expected validation error on colliding update, got %v", err)
	}

	// Updating a cliente keeping its own dni and correo is fine.
	if _, err := svc.Update(ctx, first.ID, &types.UpdateClienteRequest{
		DNI: "1111", Nombre: "Primero Renombrado", Correo: "primero@test.hn",
	}); err != nil {
		t.Errorf("self update should not collide, got %v", err)
	}
}

func TestClienteListSearchAndSort(t *testing.T) {
	db := newTestDB(t)
	svc := &ClienteService{db: db, blobs: newFakeBlobStore()}
	ctx := context.Background()

	seedCliente(t, db, "1111", "Alfa Comercial", "alfa@test.hn", "")
	seedCliente(t, db, "2222", "Beta Transportes", "beta@test.hn", "")
	seedCliente(t, db, "3333", "Alfa Agricola", "agricola@test.hn", "")

	page, err := svc.List(ctx, types.ClienteListParams{})
	if err != nil {
		t.Fatalf("list clientes: %v", err)
	}

	// Default order is newest first.
	if page.Total != 3 || page.Items[0].DNI != "3333" {
		t.Errorf("unexpected default listing: total=%d first=%+v", page.Total, page.Items[0])
	}

	params := types.ClienteListParams{}
	params.Search = "alfa"

	page, err = svc.List(ctx, params)
	if err != nil {
		t.Fatalf("search clientes: %v", err)
	}

	if page.Total != 2 {
		t.Errorf("expected 2 alfa matches, got %d", page.Total)
	}
}

func TestClienteDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	svc := &ClienteService{db: db, blobs: blobs}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "4444", "Cascada SA", "cascada@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)
	cambio := seedCambio(t, db, proceso.ID, editor.ID, model.EstadoPendiente)

	// Attach blobs at both levels so the cascade has real work to do.
	tx := db.Begin()
	if err := attachToProceso(ctx, tx, blobs, proceso.ID, []types.ArchivoSubida{
		archivo("escritura.pdf", "a"), archivo("poder.docx", "b"),
	}); err != nil {
		t.Fatalf("attach to proceso: %v", err)
	}

	if err := attachToCambio(ctx, tx, blobs, cambio.ID, []types.ArchivoSubida{
		archivo("acta.pdf", "c"),
	}); err != nil {
		t.Fatalf("attach to cambio: %v", err)
	}

	tx.Commit()

	if blobs.count() != 3 {
		t.Fatalf("expected 3 blobs stored, got %d", blobs.count())
	}

	if err := svc.Delete(ctx, cliente.ID); err != nil {
		t.Fatalf("delete cliente: %v", err)
	}

	for _, m := range []any{&model.Cliente{}, &model.Proceso{}, &model.Cambio{}, &model.Documento{}, &model.CambioDocumento{}} {
		if n := countRows(t, db, m); n != 0 {
			t.Errorf("expected %T emptied by cascade, %d rows left", m, n)
		}
	}

	if blobs.count() != 0 {
		t.Errorf("expected every blob removed, %d left", blobs.count())
	}

	// The editor must survive the cascade.
	if n := countRows(t, db, &model.User{}); n != 1 {
		t.Errorf("editor should not be touched by cliente cascade, %d users left", n)
	}
}
