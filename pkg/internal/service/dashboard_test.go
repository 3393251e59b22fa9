package service

import (
	"context"
	"testing"
	"time"

	"github.com/grupovilla/gestprocesos/pkg/internal/model"
)

func TestDashboardPorVencerWindow(t *testing.T) {
	db := newTestDB(t)
	svc := &DashboardService{db: db}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")

	pronto := time.Now().AddDate(0, 0, 3)
	lejos := time.Now().AddDate(0, 0, VencimientoDias+5)
	ayer := time.Now().AddDate(0, 0, -1)

	dentro := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoEnEjecucion, &pronto)
	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, &lejos)
	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoEntregado, &pronto)
	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)
	vencido := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, &ayer)

	res, err := svc.Resumen(ctx, adminIdent(), true)
	if err != nil {
		t.Fatalf("resumen: %v", err)
	}

	if len(res.ProcesosPorVencer) != 2 {
		t.Fatalf("expected 2 procesos por vencer, got %d", len(res.ProcesosPorVencer))
	}

	// Overdue first, then the one due soonest.
	if res.ProcesosPorVencer[0].ID != vencido.ID || res.ProcesosPorVencer[1].ID != dentro.ID {
		t.Errorf("unexpected por vencer order: %d, %d", res.ProcesosPorVencer[0].ID, res.ProcesosPorVencer[1].ID)
	}

	if res.ProcesosAsignados != 5 {
		t.Errorf("expected 5 procesos asignados, got %d", res.ProcesosAsignados)
	}
}

func TestDashboardPorEstadoZeroFilled(t *testing.T) {
	db := newTestDB(t)
	svc := &DashboardService{db: db}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")

	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)
	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)
	seedProceso(t, db, cliente.ID, editor.ID, model.EstadoEntregado, nil)

	res, err := svc.Resumen(ctx, adminIdent(), true)
	if err != nil {
		t.Fatalf("resumen: %v", err)
	}

	if len(res.PorEstado) != len(model.EstadosValidos) {
		t.Fatalf("expected every estado present, got %d", len(res.PorEstado))
	}

	byEstado := map[string]int64{}
	for _, e := range res.PorEstado {
		byEstado[e.Estado] = e.Total
	}

	if byEstado[string(model.EstadoPendiente)] != 2 || byEstado[string(model.EstadoEntregado)] != 1 {
		t.Errorf("unexpected counts: %v", byEstado)
	}

	if byEstado[string(model.EstadoEnRevision)] != 0 {
		t.Errorf("estados without rows must report zero, got %v", byEstado)
	}
}

func TestDashboardPorMesSorted(t *testing.T) {
	db := newTestDB(t)
	svc := &DashboardService{db: db}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")

	fechas := []time.Time{
		time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, f := range fechas {
		p := model.Proceso{ClienteID: cliente.ID, EditorID: editor.ID, Tipo: "t", FechaInicio: f}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed proceso: %v", err)
		}
	}

	res, err := svc.Resumen(ctx, adminIdent(), true)
	if err != nil {
		t.Fatalf("resumen: %v", err)
	}

	if len(res.PorMes) != 2 {
		t.Fatalf("expected 2 months, got %d", len(res.PorMes))
	}

	if res.PorMes[0].Mes != "2026-02" || res.PorMes[0].Total != 2 {
		t.Errorf("unexpected first month: %+v", res.PorMes[0])
	}

	if res.PorMes[1].Mes != "2026-05" || res.PorMes[1].Total != 1 {
		t.Errorf("unexpected second month: %+v", res.PorMes[1])
	}
}

func TestDashboardScoping(t *testing.T) {
	db := newTestDB(t)
	svc := &DashboardService{db: db}
	ctx := context.Background()

	ana := seedUser(t, db, "Ana", "ana@despacho.hn")
	luis := seedUser(t, db, "Luis", "luis@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")

	seedProceso(t, db, cliente.ID, ana.ID, model.EstadoPendiente, nil)
	seedProceso(t, db, cliente.ID, luis.ID, model.EstadoPendiente, nil)
	seedProceso(t, db, cliente.ID, luis.ID, model.EstadoPendiente, nil)

	res, err := svc.Resumen(ctx, editorIdent(luis.ID), false)
	if err != nil {
		t.Fatalf("resumen as editor: %v", err)
	}

	if res.ProcesosAsignados != 2 {
		t.Errorf("editor should see own procesos only, got %d", res.ProcesosAsignados)
	}

	// all is ignored for non-admins.
	res, err = svc.Resumen(ctx, editorIdent(luis.ID), true)
	if err != nil {
		t.Fatalf("resumen as editor with all: %v", err)
	}

	if res.ProcesosAsignados != 2 {
		t.Errorf("all flag must not widen an editor's view, got %d", res.ProcesosAsignados)
	}

	// An admin without the flag also sees only their own assignments.
	adminScoped := adminIdent()
	adminScoped.UserID = ana.ID

	res, err = svc.Resumen(ctx, adminScoped, false)
	if err != nil {
		t.Fatalf("resumen as admin without all: %v", err)
	}

	if res.ProcesosAsignados != 1 {
		t.Errorf("admin without all should see own work, got %d", res.ProcesosAsignados)
	}

	res, err = svc.Resumen(ctx, adminScoped, true)
	if err != nil {
		t.Fatalf("resumen as admin with all: %v", err)
	}

	if res.ProcesosAsignados != 3 {
		t.Errorf("admin with all should see everything, got %d", res.ProcesosAsignados)
	}
}

func TestDashboardUltimosCambios(t *testing.T) {
	db := newTestDB(t)
	svc := &DashboardService{db: db}
	ctx := context.Background()

	editor := seedUser(t, db, "Ana", "ana@despacho.hn")
	cliente := seedCliente(t, db, "1111", "Cliente Uno", "uno@test.hn", "")
	proceso := seedProceso(t, db, cliente.ID, editor.ID, model.EstadoPendiente, nil)

	for i := 0; i < ultimosCambiosLimit+3; i++ {
		c := model.Cambio{
			ProcesoID: proceso.ID,
			Titulo:    "Cambio",
			Fecha:     time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
			EditorID:  editor.ID,
		}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed cambio: %v", err)
		}
	}

	res, err := svc.Resumen(ctx, adminIdent(), true)
	if err != nil {
		t.Fatalf("resumen: %v", err)
	}

	if len(res.UltimosCambios) != ultimosCambiosLimit {
		t.Fatalf("expected the feed capped at %d, got %d", ultimosCambiosLimit, len(res.UltimosCambios))
	}

	// Newest first.
	if !res.UltimosCambios[0].Fecha.After(res.UltimosCambios[1].Fecha) {
		t.Errorf("expected descending fecha, got %v then %v", res.UltimosCambios[0].Fecha, res.UltimosCambios[1].Fecha)
	}
}
