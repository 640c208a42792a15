// Package config loads the application configuration.
//
// Sources are layered, later ones winning: built-in defaults, the YAML file
// named by BLOG_CONFIG_FILE (optional), then environment variables. A .env
// file in the working directory is loaded into the environment first; it
// never overrides variables that are already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	envconfig "blog/pkg/config"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// ConfigFileEnv names the optional YAML file.
const ConfigFileEnv = "BLOG_CONFIG_FILE"

// Config is the full application configuration.
type Config struct {
	ServiceName string        `yaml:"service_name"`
	Version     string        `yaml:"version"`
	Store       StoreConfig   `yaml:"store"`
	HTTP        HTTPConfig    `yaml:"http"`
	Tracing     TracingConfig `yaml:"tracing"`
}

// StoreConfig selects and tunes the article store.
type StoreConfig struct {
	// Driver is one of postgres, sqlite or mongo. Default: postgres
	Driver string `yaml:"driver"`
	// DatabaseURL is the DSN for the SQL drivers (a file path or "file:" URI for sqlite).
	DatabaseURL   string `yaml:"database_url"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// CircuitBreakerEnabled wraps the SQL handle in a gobreaker circuit breaker.
	CircuitBreakerEnabled bool `yaml:"circuit_breaker_enabled"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// MetricsAddr, when set, serves /metrics on a separate listener as well.
	MetricsAddr     string        `yaml:"metrics_addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	// WriteRateLimit is the sustained POST/PUT rate per client IP; 0 disables limiting.
	WriteRateLimit float64 `yaml:"write_rate_limit"`
	WriteBurst     int     `yaml:"write_burst"`
}

// TracingConfig toggles OpenTelemetry export.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Environment string `yaml:"environment"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServiceName: "blog",
		Version:     "dev",
		Store: StoreConfig{
			Driver:                DriverPostgres,
			MongoURI:              "mongodb://localhost:27017",
			MongoDatabase:         "blog",
			MaxOpenConns:          25,
			MaxIdleConns:          5,
			ConnMaxLifetime:       5 * time.Minute,
			CircuitBreakerEnabled: true,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    1 << 20,
			WriteRateLimit:  10,
			WriteBurst:      20,
		},
		Tracing: TracingConfig{
			Environment: "development",
		},
	}
}

// Load reads .env, the optional YAML file and the environment, then validates.
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with a final override step applied before validation.
// Command-line flags use it to take precedence over every other source.
func LoadWith(override func(*Config)) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if override != nil {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// mergeFile decodes the YAML file at path over c. Keys absent from the file
// keep their current values.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServiceName = envconfig.GetEnvString("SERVICE_NAME", c.ServiceName)
	c.Version = envconfig.GetEnvString("VERSION", c.Version)

	s := &c.Store
	s.Driver = envconfig.GetEnvString("STORE_DRIVER", s.Driver)
	s.DatabaseURL = envconfig.GetEnvString("DATABASE_URL", s.DatabaseURL)
	s.MongoURI = envconfig.GetEnvString("MONGO_URI", s.MongoURI)
	s.MongoDatabase = envconfig.GetEnvString("MONGO_DATABASE", s.MongoDatabase)
	s.MaxOpenConns = envconfig.GetEnvInt("DB_MAX_OPEN_CONNS", s.MaxOpenConns)
	s.MaxIdleConns = envconfig.GetEnvInt("DB_MAX_IDLE_CONNS", s.MaxIdleConns)
	s.ConnMaxLifetime = envconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", s.ConnMaxLifetime)
	s.CircuitBreakerEnabled = envconfig.GetEnvBool("DB_CIRCUIT_BREAKER_ENABLED", s.CircuitBreakerEnabled)

	h := &c.HTTP
	h.Addr = envconfig.GetEnvString("HTTP_ADDR", h.Addr)
	h.MetricsAddr = envconfig.GetEnvString("METRICS_ADDR", h.MetricsAddr)
	h.RequestTimeout = envconfig.GetEnvDuration("REQUEST_TIMEOUT", h.RequestTimeout)
	h.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", h.ShutdownTimeout)
	h.WriteRateLimit = envconfig.GetEnvFloat("RATE_LIMIT_WRITE_RPS", h.WriteRateLimit)
	h.WriteBurst = envconfig.GetEnvInt("RATE_LIMIT_WRITE_BURST", h.WriteBurst)

	c.Tracing.Enabled = envconfig.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.Environment = envconfig.GetEnvString("DEPLOY_ENV", c.Tracing.Environment)
}

// Validate checks configuration correctness. Every problem is reported.
func (c *Config) Validate() error {
	var errs []error

	if c.ServiceName == "" {
		errs = append(errs, errors.New("SERVICE_NAME cannot be empty"))
	}

	s := c.Store
	if err := envconfig.ValidateOneOf(s.Driver, DriverPostgres, DriverSQLite, DriverMongo); err != nil {
		errs = append(errs, fmt.Errorf("STORE_DRIVER: %w", err))
	}
	switch s.Driver {
	case DriverPostgres, DriverSQLite:
		if s.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for the %s store", s.Driver))
		}
		if s.MaxOpenConns <= 0 {
			errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be positive"))
		} else if err := envconfig.ValidateIntRange(s.MaxIdleConns, 0, s.MaxOpenConns); err != nil {
			errs = append(errs, fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS: %w", err))
		}
		if s.ConnMaxLifetime < 0 {
			errs = append(errs, errors.New("DB_CONN_MAX_LIFETIME cannot be negative"))
		}
	case DriverMongo:
		if s.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
		}
		if s.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required for the mongo store"))
		}
	}

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR cannot be empty"))
	}
	if c.HTTP.MetricsAddr != "" && c.HTTP.MetricsAddr == c.HTTP.Addr {
		errs = append(errs, errors.New("METRICS_ADDR must differ from HTTP_ADDR"))
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http.max_body_bytes must be positive"))
	}
	if c.HTTP.WriteRateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WRITE_RPS cannot be negative"))
	} else if c.HTTP.WriteRateLimit > 0 && c.HTTP.WriteBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WRITE_BURST must be positive when rate limiting is enabled"))
	}

	return errors.Join(errs...)
}
