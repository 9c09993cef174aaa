package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loadDotEnv reads ./.env into the process environment without overriding
// variables that are already set.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays Config fields whose environment variable is set.
// A missing .env file is not an error.
func parseEnv(config *Config) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
