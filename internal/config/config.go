// Package config manages the service configuration.
//
// It reads values from built-in defaults, an optional YAML file and
// environment variables (a `.env` file is loaded automatically), decodes
// them into structured Go types and validates that required values are
// present so the service fails fast on bad or missing configuration.
//
// Environment variables use the BOOKMARKS_ prefix and dot-separated keys
// for nesting, e.g. BOOKMARKS_SERVER.PORT -> Config.Server.Port.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process environment
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every environment variable read by LoadConfig.
	EnvPrefix = "BOOKMARKS_"

	// ServiceName labels logs, traces and metrics emitted by this service.
	ServiceName = "bookmarks"
)

// Config is the root configuration object for the application.
//
// `koanf` tags map configuration keys onto fields, `validate` tags are
// enforced by go-playground/validator after decoding.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	API           APIConfig            `koanf:"api"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Lifetimes are expressed in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds a postgres:// connection URL.
//
// The password is URL-escaped so characters like ':' or '@' don't break
// the URL structure, and IPv6 hosts are bracketed by net.JoinHostPort.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Redis is optional: an empty Address disables it.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// APIConfig holds behavior switches of the bookmark API.
type APIConfig struct {
	// SurfaceStorageErrors makes update and delete answer 500 for storage
	// failures other than "not found". Off by default, which reports every
	// update/delete failure as 404.
	SurfaceStorageErrors bool `koanf:"surface_storage_errors"`
}

// RateLimitConfig controls the request rate limiter.
//
// When Redis is configured the limit is shared between instances using a
// fixed window of Window seconds; otherwise a per-process token bucket is used.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"min=0"`
	Burst             int     `koanf:"burst" validate:"min=0"`
	Window            int     `koanf:"window" validate:"min=0"`
}

// defaults returns the flat key/value defaults loaded before any other source.
func defaults() map[string]any {
	return map[string]any{
		"primary.env":                                         "local",
		"server.port":                                         "8080",
		"server.read_timeout":                                 30,
		"server.write_timeout":                                30,
		"server.idle_timeout":                                 60,
		"server.cors_allowed_origins":                         []string{"*"},
		"database.port":                                       5432,
		"database.ssl_mode":                                   "disable",
		"database.max_open_conns":                             25,
		"database.max_idle_conns":                             5,
		"database.conn_max_lifetime":                          300,
		"database.conn_max_idle_time":                         300,
		"api.surface_storage_errors":                          false,
		"rate_limit.enabled":                                  false,
		"rate_limit.requests_per_second":                      20.0,
		"rate_limit.burst":                                    40,
		"rate_limit.window":                                   1,
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "console",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.logging.body.enabled":                  false,
		"observability.logging.body.include_request_body":     true,
		"observability.logging.body.include_response_body":    true,
		"observability.logging.body.max_body_length":          1024,
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.new_relic.debug_logging":               false,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"database"},
	}
}

// LoadConfig loads configuration, validates it and applies observability defaults.
//
// path is an optional YAML file; an empty path skips it. Environment variables
// override file values, which override the built-in defaults.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", path, err)
		}
	}

	// BOOKMARKS_DATABASE.HOST -> database.host
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// telemetry is labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
