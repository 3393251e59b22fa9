package service

import (
	"context"
	"testing"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

func TestCambioCreateUnderProceso(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	svc := &CambioService{db: db, blobs: blobs}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)

	cambio, err := svc.Create(ctx, adminIdent(), proceso.ID, &types.CreateCambioRequest{
		Titulo:   "Presentacion en registro",
		Estado:   string(model.EstadoEnRevision),
		Fecha:    "2026-03-10",
		EditorID: editor.ID,
	}, []types.ArchivoSubida{archivo("constancia.pdf", "contenido")})
	if err != nil {
		t.Fatalf("create cambio: %v", err)
	}

	if cambio.ProcesoID != proceso.ID || cambio.Estado != model.EstadoEnRevision {
		t.Errorf("unexpected cambio: %+v", cambio)
	}

	if len(cambio.Documentos) != 1 {
		t.Errorf("expected 1 documento preloaded, got %d", len(cambio.Documentos))
	}

	if cambio.Editor == nil || cambio.Editor.ID != editor.ID {
		t.Errorf("expected editor preloaded, got %+v", cambio.Editor)
	}
}

func TestCambioScopedThroughProceso(t *testing.T) {
	db := newTestDB(t)
	svc := &CambioService{db: db, blobs: newFakeBlobStore()}
	ctx := context.Background()

	ana := seedUser(t, db, "Ana", "ana@despacho.hn")
	luis := seedUser(t, db, "Luis", "luis@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, ana.ID, model.EstadoPendiente, nil)
	cambio := seedCambio(t, db, proceso.ID, ana.ID, model.EstadoPendiente)

	// Luis cannot reach cambios under Ana's proceso.
	if _, err := svc.Get(ctx, editorIdent(luis.ID), proceso.ID, cambio.ID); !errs.IsNotFound(err) {
		t.Errorf("expected not found across editors, got %v", err)
	}

	if _, err := svc.ListByProceso(ctx, editorIdent(luis.ID), proceso.ID, types.CambioListParams{}); !errs.IsNotFound(err) {
		t.Errorf("expected not found listing foreign proceso, got %v", err)
	}

	_, err := svc.Create(ctx, editorIdent(luis.ID), proceso.ID, &types.CreateCambioRequest{
		Titulo: "Intruso", Estado: string(model.EstadoPendiente), Fecha: "2026-03-10", EditorID: luis.ID,
	}, nil)
	if !errs.IsNotFound(err) {
		t.Errorf("expected not found creating under foreign proceso, got %v", err)
	}

	// The owner reaches everything.
	if _, err := svc.Get(ctx, editorIdent(ana.ID), proceso.ID, cambio.ID); err != nil {
		t.Errorf("owner should reach own cambio, got %v", err)
	}
}

func TestCambioListGlobalScoped(t *testing.T) {
	db := newTestDB(t)
	svc := &CambioService{db: db, blobs: newFakeBlobStore()}
	ctx := context.Background()

	ana := seedUser(t, db, "Ana", "ana@despacho.hn")
	luis := seedUser(t, db, "Luis", "luis@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	pa := seedProceso(t, db, cliente.ID, ana.ID, model.EstadoPendiente, nil)
	pl := seedProceso(t, db, cliente.ID, luis.ID, model.EstadoPendiente, nil)

	seedCambio(t, db, pa.ID, ana.ID, model.EstadoPendiente)
	seedCambio(t, db, pl.ID, luis.ID, model.EstadoPendiente)

	page, err := svc.ListGlobal(ctx, editorIdent(ana.ID), types.CambioListParams{})
	if err != nil {
		t.Fatalf("list global: %v", err)
	}

	if page.Total != 1 || page.Items[0].EditorID != ana.ID {
		t.Errorf("editor should only see own cambios, got total=%d", page.Total)
	}

	adminPage, err := svc.ListGlobal(ctx, adminIdent(), types.CambioListParams{})
	if err != nil {
		t.Fatalf("list global as admin: %v", err)
	}

	if adminPage.Total != 2 {
		t.Errorf("admin should see every cambio, got %d", adminPage.Total)
	}
}

func TestCambioUpdateKeepsProcesoAndEditor(t *testing.T) {
	db := newTestDB(t)
	svc := &CambioService{db: db, blobs: newFakeBlobStore()}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)
	cambio := seedCambio(t, db, proceso.ID, editor.ID, model.EstadoPendiente)

	updated, err := svc.Update(ctx, adminIdent(), proceso.ID, cambio.ID, &types.UpdateCambioRequest{
		Titulo: "Revision terminada",
		Estado: string(model.EstadoFinalizado),
		Fecha:  "2026-03-20",
	}, nil)
	if err != nil {
		t.Fatalf("update cambio: %v", err)
	}

	if updated.Estado != model.EstadoFinalizado || updated.Titulo != "Revision terminada" {
		t.Errorf("unexpected cambio after update: %+v", updated)
	}

	if updated.ProcesoID != proceso.ID || updated.EditorID != editor.ID {
		t.Errorf("proceso and editor must stay fixed, got %+v", updated)
	}
}

func TestCambioDeleteRemovesDocumentos(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	svc := &CambioService{db: db, blobs: blobs}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)
	cambio := seedCambio(t, db, proceso.ID, editor.ID, model.EstadoPendiente)

	if err := attachToCambio(ctx, db, blobs, cambio.ID, []types.ArchivoSubida{
		archivo("acta.pdf", "contenido"),
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := svc.Delete(ctx, adminIdent(), proceso.ID, cambio.ID); err != nil {
		t.Fatalf("delete cambio: %v", err)
	}

	if n := countRows(t, db, &model.Cambio{}); n != 0 {
		t.Errorf("expected cambio removed, %d left", n)
	}

	if n := countRows(t, db, &model.CambioDocumento{}); n != 0 {
		t.Errorf("expected cambio documentos removed, %d left", n)
	}

	if blobs.count() != 0 {
		t.Errorf("expected blobs removed, %d left", blobs.count())
	}

	// The owning proceso survives.
	if n := countRows(t, db, &model.Proceso{}); n != 1 {
		t.Errorf("proceso should survive cambio delete, %d rows", n)
	}
}
