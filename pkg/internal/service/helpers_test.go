package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// newTestDB opens an in-memory sqlite database with the full schema. The
// pool is pinned to one connection so every query sees the same memory.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// fakeBlobStore keeps blobs in a map. Remove of a missing key succeeds,
// matching the real object store client.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	failPut int // fail every Put after this many succeeded, 0 disables
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(ctx context.Context, namespace, filename string, r io.Reader, size int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPut > 0 && f.puts >= f.failPut {
		return "", fmt.Errorf("put %s rejected", filename)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	f.puts++
	key := fmt.Sprintf("%s/%d_%s", namespace, f.puts, filename)
	f.objects[key] = data

	return key, nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, key)

	return nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.objects)
}

// archivo builds an in-memory upload.
func archivo(nombre, contenido string) types.ArchivoSubida {
	return types.ArchivoSubida{
		Nombre:      nombre,
		Size:        int64(len(contenido)),
		ContentType: "application/octet-stream",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte(contenido))), nil
		},
	}
}

func adminIdent() types.Identity {
	return types.Identity{UserID: 0, Role: model.RolAdministrador}
}

func editorIdent(id uint) types.Identity {
	return types.Identity{UserID: id, Role: model.RolEditor}
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()

	u := model.User{Name: name, Email: email, Password: "x", Role: model.RolEditor}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}

	return &u
}

func seedCliente(t *testing.T, db *gorm.DB, dni, nombre, correo, telefono string) *model.Cliente {
	t.Helper()

	c := model.Cliente{DNI: dni, Nombre: nombre, Correo: correo, Telefono: telefono}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed cliente %s: %v", dni, err)
	}

	return &c
}

func seedProceso(t *testing.T, db *gorm.DB, clienteID, editorID uint, estado model.Estado, fechaFinal *time.Time) *model.Proceso {
	t.Helper()

	p := model.Proceso{
		ClienteID:   clienteID,
		Tipo:        "Constitucion de sociedad",
		Estado:      estado,
		FechaInicio: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		FechaFinal:  fechaFinal,
		EditorID:    editorID,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed proceso: %v", err)
	}

	return &p
}

func seedCambio(t *testing.T, db *gorm.DB, procesoID, editorID uint, estado model.Estado) *model.Cambio {
	t.Helper()

	c := model.Cambio{
		ProcesoID: procesoID,
		Titulo:    "Revision de escritura",
		Estado:    estado,
		Fecha:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EditorID:  editorID,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed cambio: %v", err)
	}

	return &c
}

func fechaPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}

	return n
}
