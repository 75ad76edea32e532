package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Reports  ReportsConfig  `yaml:"reports"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Export   ExportConfig   `yaml:"export"`
	I18n     I18nConfig     `yaml:"i18n"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`

	// StatementTimeout bounds each statement of a report snapshot. Zero disables it.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
}

// AuthConfig holds bearer token settings for the admin-only views.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"sapl"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ReportsConfig holds settings for the report and audit listings.
type ReportsConfig struct {
	PageSize    int    `yaml:"page_size"    env:"REPORTS_PAGE_SIZE"    env-default:"10"`
	MediaURL    string `yaml:"media_url"    env:"REPORTS_MEDIA_URL"    env-default:"/media/"`
	DefaultLogo string `yaml:"default_logo" env:"REPORTS_DEFAULT_LOGO" env-default:"/static/img/logo.png"`
}

// RealtimeConfig holds settings for the websocket channels.
// An empty NATSURL keeps fan-out inside the process.
type RealtimeConfig struct {
	NATSURL             string        `yaml:"nats_url"              env:"REALTIME_NATS_URL"`
	SubjectPrefix       string        `yaml:"subject_prefix"        env:"REALTIME_SUBJECT_PREFIX"        env-default:"sapl"`
	TimeRefreshInterval time.Duration `yaml:"time_refresh_interval" env:"REALTIME_TIME_REFRESH_INTERVAL" env-default:"1s"`
	SubscriberBuffer    int           `yaml:"subscriber_buffer"     env:"REALTIME_SUBSCRIBER_BUFFER"     env-default:"16"`
	PanelRateLimit      int           `yaml:"panel_rate_limit"      env:"REALTIME_PANEL_RATE_LIMIT"      env-default:"120"`
}

// ExportConfig holds S3 settings for audit snapshots.
// Endpoint is only set for S3-compatible stores such as MinIO.
type ExportConfig struct {
	S3Bucket   string `yaml:"s3_bucket"   env:"EXPORT_S3_BUCKET"`
	S3Region   string `yaml:"s3_region"   env:"EXPORT_S3_REGION"   env-default:"us-east-1"`
	S3Endpoint string `yaml:"s3_endpoint" env:"EXPORT_S3_ENDPOINT"`
	S3Prefix   string `yaml:"s3_prefix"   env:"EXPORT_S3_PREFIX"   env-default:"audits/"`
}

// I18nConfig holds the fallback language for titles and messages.
type I18nConfig struct {
	DefaultLang string `yaml:"default_lang" env:"I18N_DEFAULT_LANG" env-default:"pt-BR"`
}

// S3Enabled reports whether audit snapshots can be uploaded.
func (c ExportConfig) S3Enabled() bool {
	return c.S3Bucket != ""
}
