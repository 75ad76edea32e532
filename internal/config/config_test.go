package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/sapl")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/sapl"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

log:
  level: "debug"
  format: "text"

reports:
  page_size: 20
  media_url: "/arquivos/"

realtime:
  nats_url: "nats://localhost:4222"
  time_refresh_interval: "2s"
  subscriber_buffer: 8

export:
  s3_bucket: "sapl-audits"
  s3_endpoint: "http://localhost:9000"

i18n:
  default_lang: "en"
`

// validConfig returns a config that passes Validate.
func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/sapl"},
		Auth:     AuthConfig{JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+", JWTIssuer: "sapl"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Reports:  ReportsConfig{PageSize: 10},
		Realtime: RealtimeConfig{SubjectPrefix: "sapl", TimeRefreshInterval: time.Second, SubscriberBuffer: 16, PanelRateLimit: 120},
		I18n:     I18nConfig{DefaultLang: "pt-BR"},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Auth.JWTIssuer != "sapl" {
		t.Errorf("auth.jwt_issuer = %q, want default %q", cfg.Auth.JWTIssuer, "sapl")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Reports.PageSize != 20 {
		t.Errorf("reports.page_size = %d, want 20", cfg.Reports.PageSize)
	}
	if cfg.Reports.DefaultLogo != "/static/img/logo.png" {
		t.Errorf("reports.default_logo = %q, want default", cfg.Reports.DefaultLogo)
	}
	if cfg.Realtime.NATSURL != "nats://localhost:4222" {
		t.Errorf("realtime.nats_url = %q", cfg.Realtime.NATSURL)
	}
	if cfg.Realtime.TimeRefreshInterval != 2*time.Second {
		t.Errorf("realtime.time_refresh_interval = %v, want 2s", cfg.Realtime.TimeRefreshInterval)
	}
	if !cfg.Export.S3Enabled() {
		t.Error("export.s3 should be enabled when a bucket is set")
	}
	if cfg.Export.S3Region != "us-east-1" {
		t.Errorf("export.s3_region = %q, want default", cfg.Export.S3Region)
	}
	if cfg.I18n.DefaultLang != "en" {
		t.Errorf("i18n.default_lang = %q, want %q", cfg.I18n.DefaultLang, "en")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REPORTS_PAGE_SIZE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Reports.PageSize != 5 {
		t.Errorf("reports.page_size = %d, want 5 (ENV override)", cfg.Reports.PageSize)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Reports.PageSize != 10 {
		t.Errorf("reports.page_size = %d, want 10 (default)", cfg.Reports.PageSize)
	}
	if cfg.Realtime.NATSURL != "" {
		t.Errorf("realtime.nats_url = %q, want empty", cfg.Realtime.NATSURL)
	}
	if cfg.Export.S3Enabled() {
		t.Error("export.s3 should be disabled without a bucket")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"empty jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"negative statement timeout", func(c *Config) { c.Database.StatementTimeout = -time.Second }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"zero page size", func(c *Config) { c.Reports.PageSize = 0 }},
		{"fast time refresh", func(c *Config) { c.Realtime.TimeRefreshInterval = 10 * time.Millisecond }},
		{"zero subscriber buffer", func(c *Config) { c.Realtime.SubscriberBuffer = 0 }},
		{"zero panel rate limit", func(c *Config) { c.Realtime.PanelRateLimit = 0 }},
		{"dotted subject prefix", func(c *Config) { c.Realtime.SubjectPrefix = "sapl.prod" }},
		{"empty subject prefix", func(c *Config) { c.Realtime.SubjectPrefix = "" }},
		{"bad language", func(c *Config) { c.I18n.DefaultLang = "not a tag!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
