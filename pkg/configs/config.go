// Package configs manages application configuration: database, object
// storage, message bus, notification and server settings. Multiple formats
// are supported (YAML, JSON, TOML, dotenv) and hot reload can be enabled.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion is stamped into client app info and tracing resources.
const AppVersion = "1.0.0"

type (
	// AppConfig is the root application configuration.
	AppConfig struct {
		DB      DBConfig      `mapstructure:"db"`
		S3      S3Config      `mapstructure:"s3"`
		MQ      MQConfig      `mapstructure:"mq"`
		Server  ServerConfig  `mapstructure:"server"`
		Log     LogConfig     `mapstructure:"log"`
		Auth    AuthConfig    `mapstructure:"auth"`
		Notify  NotifyConfig  `mapstructure:"notify"`
		Metrics MetricsConfig `mapstructure:"metrics"`
		Tracing TracingConfig `mapstructure:"tracing"`
	}
)

var (
	globalConfig AppConfig
	appViper     *viper.Viper
)

// InitConfig loads the application configuration from a file or directory
// and enables hot reload when configured.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("GESTPROCESOS")

	if err := appViper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults registers the default values of every section.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig  ServerConfig
		dbConfig      DBConfig
		s3Config      S3Config
		mqConfig      MQConfig
		logConfig     LogConfig
		authConfig    AuthConfig
		notifyConfig  NotifyConfig
		metricsConfig MetricsConfig
		tracingConfig TracingConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	mqConfig.setDefaults(v)
	logConfig.setDefaults(v)
	authConfig.setDefaults(v)
	notifyConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig returns the global configuration instance.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
