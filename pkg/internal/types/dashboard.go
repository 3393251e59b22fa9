package types

import (
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
)

// EstadoCount is one slice of the per-estado breakdown.
type EstadoCount struct {
	Estado string `json:"estado"`
	Total  int64  `json:"total"`
}

// MesCount is one slice of the per-month breakdown, keyed YYYY-MM.
type MesCount struct {
	Mes   string `json:"mes"`
	Total int64  `json:"total"`
}

// DashboardResponse aggregates the landing figures. Non-admin callers (and
// admins without all=1) see only their own assignments.
type DashboardResponse struct {
	ProcesosAsignados int64           `json:"procesos_asignados"`
	ProcesosPorVencer []model.Proceso `json:"procesos_por_vencer"`
	UltimosCambios    []model.Cambio  `json:"ultimos_cambios"`
	PorEstado         []EstadoCount   `json:"por_estado"`
	PorMes            []MesCount      `json:"por_mes"`
}
