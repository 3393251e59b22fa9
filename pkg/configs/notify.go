package configs

import "github.com/spf13/viper"

// NotifyConfig holds outbound WhatsApp notification settings (Twilio).
// When disabled, proceso creation events are consumed and dropped.
type NotifyConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	AccountSID          string `mapstructure:"account_sid"`
	AuthToken           string `mapstructure:"auth_token"`
	From                string `mapstructure:"from"`                  // e.g. whatsapp:+14155238886
	MessagingServiceSID string `mapstructure:"messaging_service_sid"`
	TemplateContentSID  string `mapstructure:"template_content_sid"`  // default content template
	CountryPrefix       string `mapstructure:"country_prefix"`        // digits prepended to local numbers
}

func (c *NotifyConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.country_prefix", "504")
}
