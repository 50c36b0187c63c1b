// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the runtime configuration. All values come from the
// environment (a .env file is loaded by main when present); missing values
// use defaults.
type Config struct {
	// Port is the HTTP listen port for serve mode.
	Port int

	// DatabaseURL enables the export-history store when set. Everything
	// else works without a database.
	DatabaseURL string

	// SchemaPath points at the resume record JSON schema used for strict
	// validation. Empty disables strict validation.
	SchemaPath string
}

// Load reads configuration from the environment.
func Load() Config {
	cfg := Config{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SchemaPath:  os.Getenv("RESUME_SCHEMA_PATH"),
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}

	return cfg
}

// Validate checks that the configuration has usable values.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}

	if c.SchemaPath != "" {
		if _, err := os.Stat(c.SchemaPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: schema file not found: %s", c.SchemaPath)
		}
	}

	return nil
}
