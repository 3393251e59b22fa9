package types

import (
	"time"

	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/query"
)

// DateLayout is the wire format for fecha fields.
const DateLayout = "2006-01-02"

// ProcesoListParams are the accepted query params for proceso listings.
// Search matches the cliente nombre through a join.
type ProcesoListParams struct {
	query.Params
}

// CreateProcesoRequest creates a proceso. FechaFinal, when present, must not
// precede FechaInicio. Attached files ride outside the bound body as
// multipart parts.
type CreateProcesoRequest struct {
	ClienteID   uint   `form:"cliente_id"   json:"cliente_id"   rule:"required"`
	Tipo        string `form:"tipo"         json:"tipo"         rule:"required,max=255"`
	Descripcion string `form:"descripcion"  json:"descripcion"  rule:"omitempty"`
	Estado      string `form:"estado"       json:"estado"       rule:"required,estado"`
	FechaInicio string `form:"fecha_inicio" json:"fecha_inicio" rule:"required,datetime=2006-01-02"`
	FechaFinal  string `form:"fecha_final"  json:"fecha_final"  rule:"omitempty,datetime=2006-01-02"`
	EditorID    uint   `form:"editor_id"    json:"editor_id"    rule:"required"`
}

// UpdateProcesoRequest replaces the mutable fields of a proceso; additional
// files may be attached in the same request.
type UpdateProcesoRequest struct {
	ClienteID   uint   `form:"cliente_id"   json:"cliente_id"   rule:"required"`
	Tipo        string `form:"tipo"         json:"tipo"         rule:"required,max=255"`
	Descripcion string `form:"descripcion"  json:"descripcion"  rule:"omitempty"`
	Estado      string `form:"estado"       json:"estado"       rule:"required,estado"`
	FechaInicio string `form:"fecha_inicio" json:"fecha_inicio" rule:"required,datetime=2006-01-02"`
	FechaFinal  string `form:"fecha_final"  json:"fecha_final"  rule:"omitempty,datetime=2006-01-02"`
	EditorID    uint   `form:"editor_id"    json:"editor_id"    rule:"required"`
}

// ClienteRef is the cliente projection embedded in listings and the
// calendar feed.
type ClienteRef struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// UserRef is the editor projection embedded in listings and the calendar
// feed.
type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CalendarEvent is one proceso rendered for the calendar feed. End is nil
// for procesos without fecha_final.
type CalendarEvent struct {
	ID      uint       `json:"id"`
	Title   string     `json:"title"`
	Start   string     `json:"start"`
	End     *string    `json:"end,omitempty"`
	Estado  string     `json:"estado"`
	Cliente ClienteRef `json:"cliente"`
	Editor  *UserRef   `json:"editor,omitempty"`
}

// NewCalendarEvent projects a proceso (with Cliente and Editor preloaded)
// into a calendar event.
func NewCalendarEvent(p *model.Proceso) CalendarEvent {
	ev := CalendarEvent{
		ID:     p.ID,
		Title:  p.Tipo,
		Start:  p.FechaInicio.Format(DateLayout),
		Estado: string(p.Estado),
	}

	if p.FechaFinal != nil {
		end := p.FechaFinal.Format(DateLayout)
		ev.End = &end
	}

	if p.Cliente != nil {
		ev.Cliente = ClienteRef{ID: p.Cliente.ID, Nombre: p.Cliente.Nombre}
	}

	if p.Editor != nil {
		ev.Editor = &UserRef{ID: p.Editor.ID, Name: p.Editor.Name}
	}

	return ev
}

// ParseFecha parses a wire-format date.
func ParseFecha(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
