// Package cli consolidates the initialization shared by cmd/fintrack,
// cmd/fintrack-web, and cmd/fintrack-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/log"
)

// LoadEnvFile loads the .env file for local development. Errors are ignored;
// the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Bootstrap loads the environment, parses and validates configuration, and
// sets up the default logger. It exits the process on configuration errors.
func Bootstrap() (*config.Config, *log.Logger) {
	LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Setup("text", "info").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := log.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	return cfg, logger
}

// ShutdownContext returns a context cancelled on SIGINT or SIGTERM.
func ShutdownContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
