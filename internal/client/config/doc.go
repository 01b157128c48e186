// Package config loads runtime configuration for the HEVA client.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A config file selected with -c or -config. Files ending in .toml are
//     read as TOML, everything else as JSON. Durations may be "500ms"-style
//     strings or integer nanoseconds.
//  3. HEVA_* environment variables (see the env tags on Config).
//  4. Command-line flags -a, -s and -t.
//
// Example JSON:
//
//	{
//	  "server_base_url": "http://localhost:8081",
//	  "storage_backend": "sqlite",
//	  "storage_dsn": "heva.db",
//	  "request_timeout": "10s",
//	  "email_check_debounce": "500ms"
//	}
//
// Loading panics on malformed input; the CLI treats a bad config as fatal.
package config
