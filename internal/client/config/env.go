package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with HEVA_* environment variables. Unset variables
// keep the value from earlier stages.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
