package jobs

// Job names, centralised for registration and monitoring.
const (
	JobProcesoVencimiento = "proceso.vencimiento.reminder"
)

// Cron expressions per job.
const (
	CronProcesoVencimiento = "0 8 * * *"
)
