package queue

// ProcesoCreatedPayload announces a freshly created proceso. Only ids ride
// on the bus; the subscriber reloads the rows so it always notifies from
// current data.
type ProcesoCreatedPayload struct {
	ProcesoID uint `json:"proceso_id"`
	ClienteID uint `json:"cliente_id"`
	EditorID  uint `json:"editor_id"`
}

// ProcesoVencimientoPayload announces a proceso approaching its fecha
// final.
type ProcesoVencimientoPayload struct {
	ProcesoID      uint   `json:"proceso_id"`
	ClienteID      uint   `json:"cliente_id"`
	EditorID       uint   `json:"editor_id"`
	FechaFinal     string `json:"fecha_final"`
	DiasParaVencer int    `json:"dias_para_vencer"`
}
