package configs

import "github.com/spf13/viper"

// AuthConfig controls identity resolution. The service trusts the email
// header injected by the fronting auth proxy (oauth2-proxy style) and
// resolves it against the users table.
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`         // enforce identity on API routes
	EmailHeader   string   `mapstructure:"email_header"`    // header carrying the authenticated email
	SkipPaths     []string `mapstructure:"skip_paths"`      // path prefixes exempt from identity checks
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // allow ?user=<email> for local development
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.email_header", "X-Auth-Request-Email")
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
	})
}
