package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/middleware"
)

// SchedulerJobs lists the registered cron jobs and their status.
func SchedulerJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not running"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": sched.JobInfos()})
}
