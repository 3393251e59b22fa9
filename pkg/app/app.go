// Package app wires configuration, storage, background workers and the HTTP
// engine into a runnable server.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/grupovilla/gestprocesos/pkg/api"
	"github.com/grupovilla/gestprocesos/pkg/configs"
	"github.com/grupovilla/gestprocesos/pkg/context"
	"github.com/grupovilla/gestprocesos/pkg/internal/jobs"
	"github.com/grupovilla/gestprocesos/pkg/internal/notify"
	"github.com/grupovilla/gestprocesos/pkg/internal/storage"
	"github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/metrics"
	"github.com/grupovilla/gestprocesos/pkg/middleware"
	"github.com/grupovilla/gestprocesos/pkg/scheduler"
	"github.com/grupovilla/gestprocesos/pkg/tracing"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	sched  *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	ctx = context.WithStorageManager(ctx, manager)

	if err := manager.GetDBClient().Migrate(); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	sched := startScheduler(manager)
	startNotifier(ctx, config, manager)

	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.IdentityMiddleware(config.Auth),
	)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	api.RegisterGroup(engine)

	return &App{
		Engine: engine,
		config: config,
		sched:  sched,
	}
}

// startScheduler builds the cron scheduler and registers the recurring
// jobs. A scheduler failure is not fatal, the server still serves requests.
func startScheduler(manager *storage.Manager) *scheduler.Scheduler {
	sched, err := scheduler.NewScheduler()
	if err != nil {
		log.Logger().Warn().Err(err).Msg("scheduler disabled")

		return nil
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		log.Logger().Warn().Err(err).Msg("failed to register cron jobs")
	}

	sched.Start()

	return sched
}

// startNotifier hooks the WhatsApp notifier onto the message bus. With
// notifications disabled the events are still consumed and dropped so the
// bus does not accumulate.
func startNotifier(ctx contextPkg.Context, config *configs.AppConfig, manager *storage.Manager) {
	var sender notify.Sender = notify.NopSender{}
	if config.Notify.Enabled {
		sender = notify.NewTwilioSender(config.Notify)
	}

	notifier := notify.NewNotifier(manager.GetDBClient().GetDB(), sender, config.Notify.CountryPrefix)
	if err := notifier.Run(ctx, manager.GetMQClient()); err != nil {
		log.Logger().Warn().Err(err).Msg("notifier not running")
	}
}

func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Close stops the background scheduler.
func (a *App) Close() error {
	if a.sched != nil {
		return a.sched.Stop()
	}

	return nil
}
