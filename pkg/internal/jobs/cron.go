// Package jobs registers and implements the scheduled business tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	ctxPkg "github.com/grupovilla/gestprocesos/pkg/context"
	"github.com/grupovilla/gestprocesos/pkg/internal/model"
	"github.com/grupovilla/gestprocesos/pkg/internal/service"
	"github.com/grupovilla/gestprocesos/pkg/internal/storage"
	"github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/queue"
	"github.com/grupovilla/gestprocesos/pkg/scheduler"
)

// RegisterCronJobs wires the business cron jobs:
//   - every day at 08:00, publish a vencimiento event for each non-terminal
//     proceso whose fecha_final falls within the reminder window.
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if err := sched.AddCron(JobProcesoVencimiento, CronProcesoVencimiento, func(ctx context.Context) {
		runVencimientoReminder(ctx, mgr)
	}, baseCtx); err != nil {
		return err
	}

	return nil
}

// runVencimientoReminder publishes gp.proceso.vencimiento for every proceso
// due within the window.
func runVencimientoReminder(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobProcesoVencimiento).Logger()

	dbc := mgr.GetDBClient()
	if dbc == nil || dbc.DB == nil {
		l.Error().Msg("db not initialized")
		return
	}

	now := time.Now()
	limit := now.AddDate(0, 0, service.VencimientoDias)

	var procesos []model.Proceso
	err := dbc.DB.WithContext(ctx).
		Where("fecha_final IS NOT NULL AND fecha_final <= ?", limit).
		Where("estado NOT IN ?", model.EstadosTerminales).
		Order("fecha_final asc").
		Find(&procesos).Error
	if err != nil {
		l.Error().Err(err).Msg("load due procesos failed")
		return
	}

	bus := mgr.GetMQClient()
	if bus == nil {
		l.Warn().Msg("mq not initialized, skipping vencimiento events")
		return
	}

	for _, p := range procesos {
		dias := int(p.FechaFinal.Sub(now).Hours() / 24)

		msg, err := queue.NewWatermillMessage(queue.TopicProcesoVencimiento, queue.ProcesoVencimientoPayload{
			ProcesoID:      p.ID,
			ClienteID:      p.ClienteID,
			EditorID:       p.EditorID,
			FechaFinal:     p.FechaFinal.Format("2006-01-02"),
			DiasParaVencer: dias,
		}, queue.WithProducer("gestprocesos"))
		if err == nil {
			err = bus.Publish(ctx, queue.TopicProcesoVencimiento, msg)
		}

		if err != nil {
			l.Error().Err(err).Uint("proceso_id", p.ID).Msg("publish vencimiento failed")
			continue
		}
	}

	l.Info().Int("count", len(procesos)).Msg("vencimiento reminders published")
}
