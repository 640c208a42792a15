package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	ConfigFileEnv, "SERVICE_NAME", "VERSION", "STORE_DRIVER", "DATABASE_URL", "MONGO_URI",
	"MONGO_DATABASE", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
	"DB_CIRCUIT_BREAKER_ENABLED", "HTTP_ADDR", "METRICS_ADDR", "REQUEST_TIMEOUT",
	"SHUTDOWN_TIMEOUT", "TRACING_ENABLED", "DEPLOY_ENV", "RATE_LIMIT_WRITE_RPS", "RATE_LIMIT_WRITE_BURST",
}

// clearEnv blanks every key Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://blog@localhost/blog")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "blog", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 25, cfg.Store.MaxOpenConns)
	assert.Equal(t, 5, cfg.Store.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.Store.ConnMaxLifetime)
	assert.True(t, cfg.Store.CircuitBreakerEnabled)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.HTTP.MetricsAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:blog.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "1")
	t.Setenv("DB_MAX_IDLE_CONNS", "1")
	t.Setenv("DB_CIRCUIT_BREAKER_ENABLED", "false")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("METRICS_ADDR", ":9091")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("VERSION", "1.4.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:blog.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 1, cfg.Store.MaxOpenConns)
	assert.False(t, cfg.Store.CircuitBreakerEnabled)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, ":9091", cfg.HTTP.MetricsAddr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "1.4.0", cfg.Version)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigFileEnv, writeFile(t, `
service_name: blog-admin
store:
  driver: mongo
  mongo_uri: mongodb://mongo:27017
  mongo_database: blog_file
http:
  addr: ":7000"
  request_timeout: 2s
`))
	t.Setenv("MONGO_DATABASE", "blog_env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "blog-admin", cfg.ServiceName)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Store.MongoURI)
	assert.Equal(t, "blog_env", cfg.Store.MongoDatabase, "environment wins over file")
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout, "keys absent from the file keep defaults")
}

func TestLoad_FileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := Load()
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(ConfigFileEnv, writeFile(t, "store: [unclosed"))

		_, err := Load()
		assert.ErrorContains(t, err, "parse config file")
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Default()
		c.Store.DatabaseURL = "postgres://localhost/blog"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid postgres", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }, "STORE_DRIVER"},
		{"sql without url", func(c *Config) { c.Store.DatabaseURL = "" }, "DATABASE_URL is required"},
		{"idle above open", func(c *Config) { c.Store.MaxIdleConns = 30 }, "DB_MAX_IDLE_CONNS"},
		{"zero open conns", func(c *Config) { c.Store.MaxOpenConns = 0 }, "DB_MAX_OPEN_CONNS must be positive"},
		{"mongo without db", func(c *Config) {
			c.Store.Driver = DriverMongo
			c.Store.MongoDatabase = ""
		}, "MONGO_DATABASE is required"},
		{"mongo ignores sql url", func(c *Config) {
			c.Store.Driver = DriverMongo
			c.Store.DatabaseURL = ""
		}, ""},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, "HTTP_ADDR cannot be empty"},
		{"metrics on api addr", func(c *Config) { c.HTTP.MetricsAddr = c.HTTP.Addr }, "METRICS_ADDR must differ"},
		{"zero request timeout", func(c *Config) { c.HTTP.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
		{"negative shutdown timeout", func(c *Config) { c.HTTP.ShutdownTimeout = -time.Second }, "SHUTDOWN_TIMEOUT"},
		{"negative write rate", func(c *Config) { c.HTTP.WriteRateLimit = -1 }, "RATE_LIMIT_WRITE_RPS"},
		{"rate without burst", func(c *Config) { c.HTTP.WriteBurst = 0 }, "RATE_LIMIT_WRITE_BURST"},
		{"rate limiting disabled", func(c *Config) {
			c.HTTP.WriteRateLimit = 0
			c.HTTP.WriteBurst = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := Default()
	c.HTTP.Addr = ""
	c.HTTP.RequestTimeout = 0

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL is required")
	assert.ErrorContains(t, err, "HTTP_ADDR cannot be empty")
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}

func TestLoadWith_OverrideRunsBeforeValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	cfg, err := LoadWith(func(c *Config) {
		c.Store.Driver = DriverSQLite
		c.Store.DatabaseURL = "blog.db"
	})
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "blog.db", cfg.Store.DatabaseURL)

	_, err = LoadWith(func(c *Config) { c.Store.Driver = "oracle" })
	assert.ErrorContains(t, err, "STORE_DRIVER")
}
