package config

import (
	"os"
	"time"
)

// Storage backends accepted by StorageBackend.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds runtime settings for the HEVA client.
//
// Durations are time.Duration values; the file loaders accept "10s"-style
// strings, the -t flag takes whole seconds.
type Config struct {
	ServerBaseURL  string `env:"HEVA_SERVER_BASE_URL"`
	StorageBackend string `env:"HEVA_STORAGE_BACKEND"`
	StorageDSN     string `env:"HEVA_STORAGE_DSN"`
	RedisAddr      string `env:"HEVA_REDIS_ADDR"`

	RequestTimeout      time.Duration `env:"HEVA_REQUEST_TIMEOUT"`
	EmailCheckDebounce  time.Duration `env:"HEVA_EMAIL_CHECK_DEBOUNCE"`
	HealthCheckInterval time.Duration `env:"HEVA_HEALTH_CHECK_INTERVAL"`

	PasswordStrengthCheck  bool `env:"HEVA_PASSWORD_STRENGTH_CHECK"`
	MinPasswordStrength    int  `env:"HEVA_MIN_PASSWORD_STRENGTH"`
	ResetRequestsPerMinute int  `env:"HEVA_RESET_REQUESTS_PER_MINUTE"`

	LogLevel   string `env:"HEVA_LOG_LEVEL"`
	LogBackend string `env:"HEVA_LOG_BACKEND"`

	// MetricsAddr enables a Prometheus /metrics listener when set.
	MetricsAddr string `env:"HEVA_METRICS_ADDR"`
}

// LoadDefaults populates c with the built-in values.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8081"
	c.StorageBackend = StorageSQLite
	c.StorageDSN = "heva.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RequestTimeout = 10 * time.Second
	c.EmailCheckDebounce = 500 * time.Millisecond
	c.HealthCheckInterval = 30 * time.Second
	c.PasswordStrengthCheck = true
	c.MinPasswordStrength = 3
	c.ResetRequestsPerMinute = 3
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig builds a Config from defaults, then the config file, then
// HEVA_* environment variables, then flags. It panics on malformed input.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	cfg.clamp()
	return cfg
}

// clamp puts back the defaults for durations no source may set to a
// non-positive value: the request timeout and the health-check ticker.
// A negative debounce becomes zero.
func (c *Config) clamp() {
	d := &Config{}
	d.LoadDefaults()

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = d.HealthCheckInterval
	}
	if c.EmailCheckDebounce < 0 {
		c.EmailCheckDebounce = 0
	}
}
