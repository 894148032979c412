package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go-simpler.org/env"
)

// Config is loaded from the environment. Flags on individual commands
// override single fields after loading.
type Config struct {
	Listen          string        `env:"HASHMUX_LISTEN" default:":8080" usage:"network listen address"`
	DescribePath    string        `env:"HASHMUX_DESCRIBE_PATH" default:"/describe" usage:"base path for the table description endpoints"`
	MetricsPath     string        `env:"HASHMUX_METRICS_PATH" default:"/metrics" usage:"path for the prometheus scrape endpoint"`
	EnableCORS      bool          `env:"HASHMUX_CORS" default:"false" usage:"allow cross-origin requests"`
	EnableH2C       bool          `env:"HASHMUX_H2C" default:"false" usage:"serve HTTP/2 over cleartext alongside HTTP/1.1"`
	ShutdownTimeout time.Duration `env:"HASHMUX_SHUTDOWN_TIMEOUT" default:"10s" usage:"maximum time to wait for graceful shutdown"`
	LogLevel        string        `env:"HASHMUX_LOG_LEVEL" default:"info" usage:"log level: debug info warn error"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Load(cfg, nil); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) slogLevel() (slog.Level, error) {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", cfg.LogLevel)
}
