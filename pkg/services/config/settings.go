package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	DbPath          string        `mapstructure:"db_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoadSettings reads server settings from an optional config file with
// SERVER_* environment overrides.
func LoadSettings(configPath string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "impact-atlas.db")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetEnvPrefix("server")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}
