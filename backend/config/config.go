package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DefaultAddr            = "0.0.0.0:5000"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second

	EnvPrefix = "AUTHDEMO"
)

type Config struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// BindEnv lets AUTHDEMO_* environment variables override flags, with
// dashes in keys mapped to underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the api settings from v, falling back to defaults for
// anything unset.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Addr:            v.GetString("addr"),
		LogLevel:        v.GetString("log-level"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogLevel != "info" && cfg.LogLevel != "debug" {
		return Config{}, errors.Errorf("unsupported log level %q", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	return cfg, nil
}

func (c Config) NewLogger() (*zap.Logger, error) {
	if c.LogLevel == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
