// Package notify turns proceso events into WhatsApp messages. The notifier
// subscribes to the bus, reloads the rows behind each event and hands a
// rendered template to the Sender. Notification failures are logged and
// swallowed; they never propagate back into the request path.
package notify

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/storage/mq"
	nlog "github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/metrics"
	"github.com/grupovilla/gestprocesos/pkg/queue"
)

// SinEditor is the template value when the proceso has no resolvable
// editor.
const SinEditor = "Sin editor"

// SinFechaFinal is the template value when fecha_final is unset.
const SinFechaFinal = "Sin definir"

// Sender delivers one templated WhatsApp message. to is a full whatsapp
// address, variables are the content template slots keyed "1".."7".
type Sender interface {
	SendWhatsApp(ctx context.Context, to string, variables map[string]string) error
}

// NopSender discards messages. It keeps the notifier draining the bus when
// outbound notifications are disabled.
type NopSender struct{}

func (NopSender) SendWhatsApp(ctx context.Context, to string, variables map[string]string) error {
	return nil
}

// Notifier consumes proceso events and sends WhatsApp notifications.
type Notifier struct {
	db            *gorm.DB
	sender        Sender
	countryPrefix string
}

// NewNotifier builds a notifier over the given database and sender. The
// country prefix is prepended to local telefono numbers.
func NewNotifier(db *gorm.DB, sender Sender, countryPrefix string) *Notifier {
	return &Notifier{db: db, sender: sender, countryPrefix: countryPrefix}
}

// Run subscribes to the proceso-created topic and processes events until
// ctx is cancelled.
func (n *Notifier) Run(ctx context.Context, bus *mq.Client) error {
	msgs, err := bus.Subscribe(ctx, queue.TopicProcesoCreated)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			n.HandleProcesoCreated(ctx, msg)
			msg.Ack()
		}
	}()

	nlog.Logger().Info().Str("topic", queue.TopicProcesoCreated).Msg("whatsapp notifier subscribed")

	return nil
}

// HandleProcesoCreated processes one gp.proceso.created message. Every
// failure path logs and returns; the message is acked by the caller either
// way.
func (n *Notifier) HandleProcesoCreated(ctx context.Context, msg *message.Message) {
	l := nlog.Logger()

	env, err := queue.ParseProcesoCreated(msg)
	if err != nil {
		l.Error().Err(err).Str("msg_id", msg.UUID).Msg("malformed proceso created event")
		metrics.NotificationCounter.WithLabelValues("malformed").Inc()

		return
	}

	var proceso model.Proceso
	err = n.db.WithContext(ctx).
		Preload("Cliente").Preload("Editor").
		First(&proceso, env.Payload.ProcesoID).Error
	if err != nil {
		l.Warn().Err(err).Uint("proceso_id", env.Payload.ProcesoID).Msg("proceso gone before notification")
		metrics.NotificationCounter.WithLabelValues("missing").Inc()

		return
	}

	if proceso.Cliente == nil || proceso.Cliente.Telefono == "" {
		l.Debug().Uint("proceso_id", proceso.ID).Msg("cliente has no telefono, skipping notification")
		metrics.NotificationCounter.WithLabelValues("skipped").Inc()

		return
	}

	to, err := FormatWhatsappNumber(proceso.Cliente.Telefono, n.countryPrefix)
	if err != nil {
		l.Warn().Err(err).Uint("cliente_id", proceso.ClienteID).Msg("unusable telefono")
		metrics.NotificationCounter.WithLabelValues("skipped").Inc()

		return
	}

	if err := n.sender.SendWhatsApp(ctx, to, TemplateVariables(&proceso)); err != nil {
		l.Error().Err(err).Uint("proceso_id", proceso.ID).Msg("whatsapp send failed")
		metrics.NotificationCounter.WithLabelValues("failed").Inc()

		return
	}

	l.Info().Uint("proceso_id", proceso.ID).Str("to", to).Msg("whatsapp notification sent")
	metrics.NotificationCounter.WithLabelValues("sent").Inc()
}

// TemplateVariables fills the content template slots from a proceso with
// Cliente and Editor preloaded.
func TemplateVariables(p *model.Proceso) map[string]string {
	clienteNombre := ""
	if p.Cliente != nil {
		clienteNombre = p.Cliente.Nombre
	}

	fechaFinal := SinFechaFinal
	if p.FechaFinal != nil {
		fechaFinal = p.FechaFinal.Format("2006-01-02")
	}

	editor := SinEditor
	if p.Editor != nil && p.Editor.Name != "" {
		editor = p.Editor.Name
	}

	return map[string]string{
		"1": clienteNombre,
		"2": p.Tipo,
		"3": string(p.Estado),
		"4": p.Descripcion,
		"5": p.FechaInicio.Format("2006-01-02"),
		"6": fechaFinal,
		"7": editor,
	}
}
