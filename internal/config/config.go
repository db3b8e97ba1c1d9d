// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

// Backend names accepted by DATA_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	// HTTP listeners
	APIAddr string `env:"API_ADDR" envDefault:":8000"`
	WebAddr string `env:"WEB_ADDR" envDefault:":8080"`

	// Where the web client finds the REST API
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`

	// Storage
	DataBackend string `env:"DATA_BACKEND" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_DB_PATH" envDefault:"./data/fintrack.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	// AMQP mutation events (optional; empty URL disables publishing)
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"fintrack"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"mutations"`

	// Monthly adjustment scheduler
	AdjustInterval time.Duration `env:"ADJUST_INTERVAL" envDefault:"1h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	switch c.DataBackend {
	case BackendMemory, BackendSQLite, BackendPostgres:
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend %q: must be one of memory, sqlite, postgres", c.DataBackend))
	}

	if c.DataBackend == BackendSQLite {
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		} else if dir := filepath.Dir(c.SQLitePath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create database directory %q: %v", dir, err))
				}
			}
		}
	}

	if c.DataBackend == BackendPostgres && c.PostgresDSN == "" {
		errs = append(errs, "POSTGRES_DSN is required when using the postgres backend")
	}

	if c.AMQPURL != "" {
		u, err := url.Parse(c.AMQPURL)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP_EXCHANGE cannot be empty when AMQP_URL is set")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP_QUEUE cannot be empty when AMQP_URL is set")
		}
	}

	if _, err := url.Parse(c.APIBaseURL); err != nil || c.APIBaseURL == "" {
		errs = append(errs, fmt.Sprintf("invalid API base URL %q", c.APIBaseURL))
	}

	if c.AdjustInterval <= 0 {
		errs = append(errs, "ADJUST_INTERVAL must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
