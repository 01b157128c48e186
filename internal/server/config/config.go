// Package config handles configuration for the dev backend, including
// defaults, environment overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the dev backend.
//
// Fields:
//   - Addr: bind address for the HTTP listener.
//   - LogLevel / LogBackend: passed to logging.New.
//   - ShutdownTimeout: how long in-flight requests get on stop.
type Config struct {
	Addr            string        `env:"DEVSERVER_ADDR"`
	LogLevel        string        `env:"DEVSERVER_LOG_LEVEL"`
	LogBackend      string        `env:"DEVSERVER_LOG_BACKEND"`
	ShutdownTimeout time.Duration `env:"DEVSERVER_SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with local development defaults. The
// address matches the client's default backend URL.
func (c *Config) LoadDefaults() {
	c.Addr = ":8081"
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
