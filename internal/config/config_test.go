package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIAddr != ":8000" {
		t.Errorf("APIAddr = %q", cfg.APIAddr)
	}
	if cfg.WebAddr != ":8080" {
		t.Errorf("WebAddr = %q", cfg.WebAddr)
	}
	if cfg.DataBackend != BackendMemory {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.AdjustInterval != time.Hour {
		t.Errorf("AdjustInterval = %v", cfg.AdjustInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/fintrack.db")
	t.Setenv("ADJUST_INTERVAL", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != BackendSQLite {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.AdjustInterval != 15*time.Minute {
		t.Errorf("AdjustInterval = %v", cfg.AdjustInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"bad backend", func(c *Config) { c.DataBackend = "oracle" }, "invalid data backend"},
		{"postgres without dsn", func(c *Config) { c.DataBackend = BackendPostgres }, "POSTGRES_DSN"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "AMQP_QUEUE"},
		{"zero interval", func(c *Config) { c.AdjustInterval = 0 }, "ADJUST_INTERVAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tc.mut(cfg)
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate = %v, want substring %q", err, tc.want)
			}
		})
	}
}
