// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles importer settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. Command line flags
may override a subset of the values after loading.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the novel importer.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// LogFormat selects the slog handler: "text" or "json".
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL enables the cross-process batch lock when set.
	RedisURL string `env:"REDIS_URL"`

	// LockTTL bounds how long a crashed importer can hold the batch lock.
	// A running importer keeps extending it.
	LockTTL time.Duration `env:"IMPORT_LOCK_TTL" envDefault:"2m"`

	// Import defaults
	ReportDir     string `env:"REPORT_DIR"     envDefault:"."`
	DefaultAuthor string `env:"DEFAULT_AUTHOR" envDefault:"未知作者"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the importer is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the importer is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LockEnabled reports whether a Redis URL was supplied for batch locking.
func (c *Config) LockEnabled() bool {
	return c.RedisURL != ""
}
