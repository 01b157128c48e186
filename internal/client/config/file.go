package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/heva-credit/heva/internal/flagx"
	"github.com/heva-credit/heva/internal/timex"
)

// FileConfig is the on-disk shape shared by the JSON and TOML loaders.
// Absent keys leave the current value untouched.
type FileConfig struct {
	ServerBaseURL          string         `json:"server_base_url" toml:"server_base_url"`
	StorageBackend         string         `json:"storage_backend" toml:"storage_backend"`
	StorageDSN             string         `json:"storage_dsn" toml:"storage_dsn"`
	RedisAddr              string         `json:"redis_addr" toml:"redis_addr"`
	RequestTimeout         timex.Duration `json:"request_timeout" toml:"request_timeout"`
	EmailCheckDebounce     timex.Duration `json:"email_check_debounce" toml:"email_check_debounce"`
	HealthCheckInterval    timex.Duration `json:"health_check_interval" toml:"health_check_interval"`
	PasswordStrengthCheck  *bool          `json:"password_strength_check" toml:"password_strength_check"`
	MinPasswordStrength    int            `json:"min_password_strength" toml:"min_password_strength"`
	ResetRequestsPerMinute int            `json:"reset_requests_per_minute" toml:"reset_requests_per_minute"`
	LogLevel               string         `json:"log_level" toml:"log_level"`
	LogBackend             string         `json:"log_backend" toml:"log_backend"`
	MetricsAddr            string         `json:"metrics_addr" toml:"metrics_addr"`
}

// parseFile overlays cfg with the file named by -c/-config. The format is
// picked by extension: .toml is TOML, anything else is JSON.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	fc, err := readFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func readFile(path string) (*FileConfig, error) {
	var fc FileConfig

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return &fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.ServerBaseURL, fc.ServerBaseURL)
	setString(&cfg.StorageBackend, fc.StorageBackend)
	setString(&cfg.StorageDSN, fc.StorageDSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)

	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.EmailCheckDebounce.Duration > 0 {
		cfg.EmailCheckDebounce = fc.EmailCheckDebounce.Duration
	}
	if fc.HealthCheckInterval.Duration > 0 {
		cfg.HealthCheckInterval = fc.HealthCheckInterval.Duration
	}
	if fc.PasswordStrengthCheck != nil {
		cfg.PasswordStrengthCheck = *fc.PasswordStrengthCheck
	}
	if fc.MinPasswordStrength > 0 {
		cfg.MinPasswordStrength = fc.MinPasswordStrength
	}
	if fc.ResetRequestsPerMinute > 0 {
		cfg.ResetRequestsPerMinute = fc.ResetRequestsPerMinute
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
