// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment names accepted for APP_ENVIRONMENT.
const (
	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// BoolFlag is a permissive boolean for flag-like environment variables:
// "0", "false" and "no" (any case) disable, anything else enables.
type BoolFlag bool

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BoolFlag) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "0", "false", "no":
		*b = false
	default:
		*b = true
	}
	return nil
}

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnvironment string `env:"APP_ENVIRONMENT" envDefault:"local" validate:"oneof=local development production"`
	Port           int    `env:"PORT" envDefault:"8080"`
	// APIRootPath is the external path prefix when the service runs behind a
	// reverse proxy; used only to build absolute links (docs, openapi).
	APIRootPath string `env:"API_ROOT_PATH" envDefault:""`
	// APIPrefix is prepended to the demonstration routes, e.g. "/v1/public".
	APIPrefix string `env:"API_PREFIX" envDefault:""`
	TmpDir    string `env:"TMP_DIR" envDefault:"./tmp"`

	// Telemetry
	ExportTraces    BoolFlag `env:"EXPORT_TRACES" envDefault:"true"`
	ExcludedURLs    []string `env:"OTEL_EXCLUDED_URLS" envSeparator:","`
	OTLPEndpoint    string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string   `env:"OTEL_SERVICE_NAME" envDefault:"api-template"`

	// Demonstration external call
	ExternalAPIURL     string        `env:"EXTERNAL_API_URL" envDefault:"https://httpbin.org/json"`
	ExternalAPITimeout time.Duration `env:"EXTERNAL_API_TIMEOUT" envDefault:"5s"`
	// ProcessingDelay is how long the fake processing task pretends to work.
	ProcessingDelay time.Duration `env:"PROCESSING_DELAY" envDefault:"2s"`

	// HTTP server
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"60"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	// Assets
	StaticDir   string `env:"STATIC_DIR" envDefault:"web/static"`
	OpenAPIFile string `env:"OPENAPI_FILE" envDefault:"api/openapi.yaml"`
}

// Load parses environment variables into a Config, validating the
// environment name and creating the temp directory. A .env file in the
// working directory is loaded first when present.
func Load() (Config, error) {
	// Missing .env is the normal case; only an existing file is loaded.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("op=config.Load: load .env: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: invalid APP_ENVIRONMENT %q: must be one of %s, %s, %s",
			cfg.AppEnvironment, EnvLocal, EnvDevelopment, EnvProduction)
	}
	if err := os.MkdirAll(cfg.TmpDir, 0o750); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: create tmp dir: %w", err)
	}
	return cfg, nil
}

// IsLocal reports whether the app is running on a developer machine.
func (c Config) IsLocal() bool { return strings.ToLower(c.AppEnvironment) == EnvLocal }

// IsDevelopment reports whether the app is running in the development environment.
func (c Config) IsDevelopment() bool { return strings.ToLower(c.AppEnvironment) == EnvDevelopment }

// IsProduction reports whether the app is running in production.
func (c Config) IsProduction() bool { return strings.ToLower(c.AppEnvironment) == EnvProduction }

// ExcludedPath reports whether the request path, after stripping the API
// prefix, exactly matches one of the configured excluded paths. Matching
// requests have their access logging demoted to debug level.
func (c Config) ExcludedPath(path string) bool {
	stripped := strings.TrimPrefix(path, c.APIPrefix)
	for _, p := range c.ExcludedURLs {
		if p != "" && stripped == p {
			return true
		}
	}
	return false
}
