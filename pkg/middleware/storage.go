package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/context"
	"github.com/grupovilla/gestprocesos/pkg/internal/storage"
)

// StorageMiddleware injects the storage manager into the request context so
// services can pull their clients from it.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
