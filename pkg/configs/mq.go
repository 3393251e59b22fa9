package configs

import (
	"github.com/spf13/viper"
)

// MQType selects the message bus backing the event queue.
type MQType string

const (
	MQTypeGoChannel MQType = "gochannel" // in-process pub/sub, default
	MQTypeNATS      MQType = "nats"

	DefaultMQURL         = "localhost:4222"
	DefaultMaxReconnects = 5
	DefaultReconnectWait = 5 // seconds
	DefaultMQClientID    = "gestprocesos-app"
)

// MQConfig holds message bus settings.
type MQConfig struct {
	Type MQType       `mapstructure:"type" rule:"oneof=gochannel nats"`
	NATS MQNATSConfig `mapstructure:"nats"`
}

// MQNATSConfig holds NATS-specific settings.
type MQNATSConfig struct {
	URL              string `mapstructure:"url"               rule:"hostname_port"`
	User             string `mapstructure:"user"`
	Password         string `mapstructure:"password"`
	ClientID         string `mapstructure:"client_id"`
	MaxReconnects    int    `mapstructure:"max_reconnects"    rule:"min=0,max=100"`
	ReconnectWait    int    `mapstructure:"reconnect_wait"    rule:"min=1,max=300"`
	JetStreamEnabled bool   `mapstructure:"jetstream_enabled"`
}

// GetMQType returns the configured bus type.
func (c *MQConfig) GetMQType() MQType {
	return c.Type
}

func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeGoChannel)
	v.SetDefault("mq.nats.url", DefaultMQURL)
	v.SetDefault("mq.nats.client_id", DefaultMQClientID)
	v.SetDefault("mq.nats.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("mq.nats.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("mq.nats.jetstream_enabled", false)
}
