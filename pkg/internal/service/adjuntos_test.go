package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

func TestValidateArchivosLimits(t *testing.T) {
	// Empty batches are always fine.
	if err := validateArchivos(nil); err != nil {
		t.Errorf("empty batch should pass, got %v", err)
	}

	// Too many files.
	many := make([]types.ArchivoSubida, MaxArchivosPorLote+1)
	for i := range many {
		many[i] = archivo(fmt.Sprintf("doc%d.pdf", i), "x")
	}

	if _, ok := errs.AsValidation(validateArchivos(many)); !ok {
		t.Error("expected validation error for oversized batch")
	}

	// Disallowed extension, reported against its batch position.
	err := validateArchivos([]types.ArchivoSubida{
		archivo("bueno.pdf", "x"),
		archivo("malo.txt", "x"),
	})

	ve, ok := errs.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, present := ve.Fields["archivos[1]"]; !present {
		t.Errorf("expected archivos[1] flagged, got %v", ve.Fields)
	}

	// Oversized file.
	grande := archivo("grande.pdf", "x")
	grande.Size = MaxArchivoBytes + 1

	if _, ok := errs.AsValidation(validateArchivos([]types.ArchivoSubida{grande})); !ok {
		t.Error("expected validation error for file over the size cap")
	}

	// Extension matching is case-insensitive.
	if err := validateArchivos([]types.ArchivoSubida{archivo("ESCRITURA.PDF", "x")}); err != nil {
		t.Errorf("uppercase extension should pass, got %v", err)
	}
}

func TestStoreArchivosCompensatesOnFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.failPut = 2 // third Put fails

	files := []types.ArchivoSubida{
		archivo("uno.pdf", "a"),
		archivo("dos.pdf", "b"),
		archivo("tres.pdf", "c"),
	}

	_, err := storeArchivos(context.Background(), blobs, NamespaceProcesoDocs, files)
	if err == nil {
		t.Fatal("expected store failure")
	}

	if blobs.count() != 0 {
		t.Errorf("expected earlier blobs removed after failure, %d left", blobs.count())
	}
}

func TestDetachAdjuntoTolerantOfMissingBlob(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)

	if err := attachToProceso(ctx, db, blobs, proceso.ID, []types.ArchivoSubida{
		archivo("escritura.pdf", "contenido"),
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	var doc model.Documento
	if err := db.First(&doc).Error; err != nil {
		t.Fatalf("load documento: %v", err)
	}

	// Blob already gone, the row must still be removable.
	if err := blobs.Remove(ctx, doc.Ruta); err != nil {
		t.Fatalf("pre-remove blob: %v", err)
	}

	if err := detachAdjunto(ctx, db, blobs, doc, &model.Documento{}); err != nil {
		t.Fatalf("detach with missing blob: %v", err)
	}

	if n := countRows(t, db, &model.Documento{}); n != 0 {
		t.Errorf("expected row removed, %d left", n)
	}
}

func TestAttachKeepsOriginalName(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)

	if err := attachToProceso(ctx, db, blobs, proceso.ID, []types.ArchivoSubida{
		archivo("Escritura Publica 44.pdf", "contenido"),
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	var doc model.Documento
	if err := db.First(&doc).Error; err != nil {
		t.Fatalf("load documento: %v", err)
	}

	if doc.NombreOriginal != "Escritura Publica 44.pdf" {
		t.Errorf("expected original name kept, got %q", doc.NombreOriginal)
	}

	if doc.Ruta == "" || doc.Ruta == doc.NombreOriginal {
		t.Errorf("expected namespaced blob key, got %q", doc.Ruta)
	}
}
