package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must be >= 0 (got %s)", c.Database.StatementTimeout)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.Reports.PageSize <= 0 {
		return fmt.Errorf("reports.page_size must be > 0 (got %d)", c.Reports.PageSize)
	}

	if err := c.Realtime.validate(); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}

	if _, err := language.Parse(c.I18n.DefaultLang); err != nil {
		return fmt.Errorf("i18n.default_lang %q: %w", c.I18n.DefaultLang, err)
	}

	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
}

func (r *RealtimeConfig) validate() error {
	if r.TimeRefreshInterval < 100*time.Millisecond {
		return fmt.Errorf("time_refresh_interval must be >= 100ms (got %s)", r.TimeRefreshInterval)
	}
	if r.SubscriberBuffer <= 0 {
		return fmt.Errorf("subscriber_buffer must be > 0 (got %d)", r.SubscriberBuffer)
	}
	if r.PanelRateLimit <= 0 {
		return fmt.Errorf("panel_rate_limit must be > 0 (got %d)", r.PanelRateLimit)
	}
	if r.SubjectPrefix == "" || strings.ContainsAny(r.SubjectPrefix, " .*>") {
		return fmt.Errorf("subject_prefix must be a single NATS token (got %q)", r.SubjectPrefix)
	}
	return nil
}
