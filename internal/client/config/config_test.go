package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8081", c.ServerBaseURL)
	assert.Equal(t, StorageSQLite, c.StorageBackend)
	assert.Equal(t, "heva.db", c.StorageDSN)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, c.EmailCheckDebounce)
	assert.Equal(t, 30*time.Second, c.HealthCheckInterval)
	assert.True(t, c.PasswordStrengthCheck)
	assert.Equal(t, 3, c.MinPasswordStrength)
	assert.Equal(t, 3, c.ResetRequestsPerMinute)
}

func TestLoad_NoSourcesGivesDefaults(t *testing.T) {
	cfg := load(nil)
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heva.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://file:1",
		"storage_dsn": "file.db",
		"request_timeout": "4s",
		"log_level": "debug"
	}`), 0o600))

	t.Setenv("HEVA_STORAGE_DSN", "env.db")
	t.Setenv("HEVA_REQUEST_TIMEOUT", "6s")

	cfg := load([]string{"-c", path, "-a", "http://flag:2"})

	want := defaults()
	want.ServerBaseURL = "http://flag:2"
	want.StorageDSN = "env.db"
	want.RequestTimeout = 6 * time.Second
	want.LogLevel = "debug"

	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_NonPositiveDurationsFallBackToDefaults(t *testing.T) {
	t.Setenv("HEVA_HEALTH_CHECK_INTERVAL", "0s")
	t.Setenv("HEVA_EMAIL_CHECK_DEBOUNCE", "-1s")

	cfg := load([]string{"-t", "0"})

	assert.Equal(t, 30*time.Second, cfg.HealthCheckInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.EmailCheckDebounce)
	assert.NotPanics(t, func() { time.NewTicker(cfg.HealthCheckInterval).Stop() })
}

func TestLoad_MetricsAddr(t *testing.T) {
	assert.Empty(t, load(nil).MetricsAddr)

	t.Setenv("HEVA_METRICS_ADDR", "127.0.0.1:9464")
	assert.Equal(t, "127.0.0.1:9464", load(nil).MetricsAddr)
	assert.Equal(t, ":9000", load([]string{"-m", ":9000"}).MetricsAddr)
}
