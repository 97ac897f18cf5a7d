// Package config loads backend configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the caseport backend.
// Environment variables are parsed from the CASEPORT_ prefix,
// e.g. CASEPORT_EXPORT_DIR, CASEPORT_ENCRYPTION_KEY.
type Config struct {
	// DataDir is where the sqlite database lives.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// ExportDir is the default destination for generated export files.
	ExportDir string `envconfig:"EXPORT_DIR" default:"exports"`

	// EncryptionKey protects field-level encrypted columns. Required.
	EncryptionKey string `envconfig:"ENCRYPTION_KEY" default:""`

	// LogLevel controls log verbosity (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CASEPORT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.EncryptionKey == "" {
		return fmt.Errorf("CASEPORT_ENCRYPTION_KEY is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("CASEPORT_DATA_DIR cannot be empty")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("CASEPORT_EXPORT_DIR cannot be empty")
	}
	return nil
}

// NewForTesting creates a config suitable for tests.
func NewForTesting() *Config {
	return &Config{
		DataDir:       "data",
		ExportDir:     "exports",
		EncryptionKey: "test-encryption-key",
		LogLevel:      "debug",
	}
}
