package model

import (
	"github.com/go-playground/validator/v10"

	"github.com/grupovilla/gestprocesos/pkg/rule"
)

// Estado is the lifecycle status shared by Proceso and Cambio. The set is
// flat: any value may move to any other value.
type Estado string

const (
	EstadoPendiente   Estado = "Pendiente"
	EstadoEnRevision  Estado = "En Revision"
	EstadoEnEjecucion Estado = "En Ejecucion"
	EstadoFinalizado  Estado = "Finalizado"
	EstadoEntregado   Estado = "Entregado"
)

// EstadosValidos lists every accepted estado, in display order.
var EstadosValidos = []Estado{
	EstadoPendiente,
	EstadoEnRevision,
	EstadoEnEjecucion,
	EstadoFinalizado,
	EstadoEntregado,
}

// EstadosTerminales are the estados that close a proceso; work in these is
// excluded from pending-task counts and due-date reminders.
var EstadosTerminales = []Estado{EstadoFinalizado, EstadoEntregado}

// Valid reports whether e belongs to the fixed estado set.
func (e Estado) Valid() bool {
	for _, v := range EstadosValidos {
		if e == v {
			return true
		}
	}

	return false
}

// Terminal reports whether e is Finalizado or Entregado.
func (e Estado) Terminal() bool {
	for _, v := range EstadosTerminales {
		if e == v {
			return true
		}
	}

	return false
}

func init() {
	// "estado" rule tag for request binding structs.
	_ = rule.RegisterValidation("estado", func(fl validator.FieldLevel) bool {
		return Estado(fl.Field().String()).Valid()
	})
}
