package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/scheduler"
)

const schedulerContextKey = "scheduler"

// SchedulerMiddleware exposes the scheduler to the job monitoring
// endpoints.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(schedulerContextKey, sched)
		c.Next()
	}
}

// GetScheduler returns the scheduler injected by SchedulerMiddleware.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	if v, ok := c.Get(schedulerContextKey); ok {
		if s, ok2 := v.(*scheduler.Scheduler); ok2 {
			return s
		}
	}

	return nil
}
