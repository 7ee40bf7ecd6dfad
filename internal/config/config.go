// Package config provides centralized configuration management for TradeScout.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Store and mirror driver names.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mirror   MirrorConfig
	AI       AIConfig
	Import   ImportConfig
	Monitor  MonitorConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"120s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including draining imports (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests. AI analysis
	// fans out to several provider calls, so this is generous (default: 90s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"90s"`
}

// DatabaseConfig holds persistence gateway settings.
type DatabaseConfig struct {
	// Driver selects the gateway implementation: postgres or memory (default: postgres)
	Driver string `env:"STORE_DRIVER" default:"postgres"`

	// URL is the PostgreSQL connection string, required for the postgres driver.
	// Supports both DATABASE_URL and DB_URL env vars.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// QueryTimeout bounds every single gateway call (default: 10s)
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" default:"10s"`

	// AutoMigrate applies the embedded schema on startup (default: true)
	AutoMigrate bool `env:"DB_AUTO_MIGRATE" default:"true"`
}

// MirrorConfig holds settings for the durable local mirror of the customer list.
type MirrorConfig struct {
	// Driver selects the mirror backend: redis or memory (default: memory)
	Driver string `env:"MIRROR_DRIVER" default:"memory"`

	RedisAddr     string `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" default:"0"`

	// Key is the fixed key holding the JSON-encoded record list
	Key string `env:"MIRROR_KEY" default:"tradescout-customers"`

	// Timeout bounds a single mirror read or write (default: 2s)
	Timeout time.Duration `env:"MIRROR_TIMEOUT" default:"2s"`
}

// AIConfig holds settings for the text-generation providers.
type AIConfig struct {
	GeminiAPIKey  string `env:"GEMINI_API_KEY" envAlt:"VITE_GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY" envAlt:"VITE_OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`

	// ProviderOrder is the fallback order, first entry tried first
	ProviderOrder []string `env:"AI_PROVIDER_ORDER" default:"gemini,openai"`

	Timeout     time.Duration `env:"AI_TIMEOUT" default:"30s"`
	RetryCount  int           `env:"AI_RETRY_COUNT" default:"0"`
	Temperature float64       `env:"AI_TEMPERATURE" default:"0.7"`
	MaxTokens   int           `env:"AI_MAX_TOKENS" default:"300"`

	// ResponseLanguage is the language the providers are asked to answer in
	ResponseLanguage string `env:"AI_RESPONSE_LANGUAGE" default:"Turkish"`
}

// ImportConfig holds document import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed upload size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 3)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"3"`

	// MaxWaitTime is how long to wait for an import slot (default: 15s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"15s"`
}

// MonitorConfig holds settings for the periodic connection probe.
type MonitorConfig struct {
	ProbeInterval time.Duration `env:"MONITOR_PROBE_INTERVAL" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// ImportLimit is requests per minute for import endpoints (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey enables X-API-Key authentication on /api routes
	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
