package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
)

// VencimientoDias is the reminder window: procesos whose fecha_final falls
// within this many days show up as "por vencer".
const VencimientoDias = 5

const ultimosCambiosLimit = 10

// DashboardService aggregates the landing figures.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService builds the service from the request context.
func NewDashboardService(c context.Context) *DashboardService {
	d := depsFromContext(c)

	return &DashboardService{db: d.db}
}

// Resumen computes the dashboard. Non-admin callers always see their own
// figures; an admin sees global figures when all is set.
func (s *DashboardService) Resumen(ctx context.Context, ident types.Identity, all bool) (*types.DashboardResponse, error) {
	global := all && ident.IsAdmin()

	scoped := func(db *gorm.DB) *gorm.DB {
		if global {
			return db
		}

		return db.Where("editor_id = ?", ident.UserID)
	}

	out := &types.DashboardResponse{}

	if err := scoped(s.db.WithContext(ctx).Model(&model.Proceso{})).
		Count(&out.ProcesosAsignados).Error; err != nil {
		return nil, fmt.Errorf("count procesos: %w", err)
	}

	porVencer, err := s.porVencer(ctx, scoped)
	if err != nil {
		return nil, err
	}

	out.ProcesosPorVencer = porVencer

	if err := scoped(s.db.WithContext(ctx).Preload("Proceso").Preload("Proceso.Cliente")).
		Order("fecha desc").Limit(ultimosCambiosLimit).
		Find(&out.UltimosCambios).Error; err != nil {
		return nil, fmt.Errorf("load ultimos cambios: %w", err)
	}

	porEstado, err := s.porEstado(ctx, scoped)
	if err != nil {
		return nil, err
	}

	out.PorEstado = porEstado

	porMes, err := s.porMes(ctx, scoped)
	if err != nil {
		return nil, err
	}

	out.PorMes = porMes

	return out, nil
}

// porVencer lists non-terminal procesos due within the reminder window,
// soonest first.
func (s *DashboardService) porVencer(ctx context.Context, scoped func(*gorm.DB) *gorm.DB) ([]model.Proceso, error) {
	now := time.Now()
	limit := now.AddDate(0, 0, VencimientoDias)

	var procesos []model.Proceso
	err := scoped(s.db.WithContext(ctx).Preload("Cliente").Preload("Editor")).
		Where("fecha_final IS NOT NULL AND fecha_final <= ?", limit).
		Where("estado NOT IN ?", model.EstadosTerminales).
		Order("fecha_final asc").
		Find(&procesos).Error
	if err != nil {
		return nil, fmt.Errorf("load procesos por vencer: %w", err)
	}

	return procesos, nil
}

// porEstado counts procesos per estado, in display order. Estados with no
// rows still appear with a zero.
func (s *DashboardService) porEstado(ctx context.Context, scoped func(*gorm.DB) *gorm.DB) ([]types.EstadoCount, error) {
	type row struct {
		Estado string
		Total  int64
	}

	var rows []row
	err := scoped(s.db.WithContext(ctx).Model(&model.Proceso{})).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count por estado: %w", err)
	}

	byEstado := make(map[string]int64, len(rows))
	for _, r := range rows {
		byEstado[r.Estado] = r.Total
	}

	out := make([]types.EstadoCount, 0, len(model.EstadosValidos))
	for _, e := range model.EstadosValidos {
		out = append(out, types.EstadoCount{Estado: string(e), Total: byEstado[string(e)]})
	}

	return out, nil
}

// porMes counts procesos per fecha_inicio month. The month key is computed
// in Go so the query stays portable across the three supported databases.
func (s *DashboardService) porMes(ctx context.Context, scoped func(*gorm.DB) *gorm.DB) ([]types.MesCount, error) {
	var procesos []model.Proceso
	err := scoped(s.db.WithContext(ctx).Model(&model.Proceso{})).
		Select("fecha_inicio").
		Find(&procesos).Error
	if err != nil {
		return nil, fmt.Errorf("load fechas: %w", err)
	}

	counts := map[string]int64{}
	for _, p := range procesos {
		counts[p.FechaInicio.Format("2006-01")]++
	}

	meses := make([]string, 0, len(counts))
	for m := range counts {
		meses = append(meses, m)
	}

	sort.Strings(meses)

	out := make([]types.MesCount, 0, len(meses))
	for _, m := range meses {
		out = append(out, types.MesCount{Mes: m, Total: counts[m]})
	}

	return out, nil
}
