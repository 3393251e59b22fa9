package middleware

import (
	stdctx "context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grupovilla/gestprocesos/pkg/configs"
	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/service"
	"github.com/grupovilla/gestprocesos/pkg/internal/types"
	"github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/rule"
)

type identityKey struct{}

const identityContextKey = "identity"

// IdentityMiddleware resolves the caller from the trusted email header set
// by the fronting auth proxy and injects a types.Identity. Requests without
// a resolvable account are rejected with 401.
func IdentityMiddleware(cfg configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || skipPath(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		email := strings.TrimSpace(c.GetHeader(cfg.EmailHeader))
		if email == "" && cfg.DevAllowQuery {
			email = strings.TrimSpace(c.Query("user"))
		}

		if err := rule.ValidateVar(email, "required,email"); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid identity"})
			return
		}

		user, err := service.NewUserService(c.Request.Context()).FindByEmail(c.Request.Context(), email)
		if err != nil {
			if errs.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
				return
			}

			log.Logger().Error().Err(err).Str("email", email).Msg("identity lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity lookup failed"})

			return
		}

		ident := types.Identity{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
		}

		c.Set(identityContextKey, ident)
		ctx := stdctx.WithValue(c.Request.Context(), identityKey{}, ident)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func skipPath(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

// GetIdentity returns the resolved caller. The boolean is false on skip
// paths where no identity was injected.
func GetIdentity(c *gin.Context) (types.Identity, bool) {
	if v, ok := c.Get(identityContextKey); ok {
		if ident, ok2 := v.(types.Identity); ok2 {
			return ident, true
		}
	}

	if v := c.Request.Context().Value(identityKey{}); v != nil {
		if ident, ok := v.(types.Identity); ok {
			return ident, true
		}
	}

	return types.Identity{}, false
}
