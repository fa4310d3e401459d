package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_ENV", "CORS_ORIGINS",
		"DATABASE_DRIVER", "DATABASE_URL",
		"JWT_SECRET", "JWT_REFRESH_SECRET", "JWT_EXPIRES_IN", "JWT_REFRESH_EXPIRES_IN", "JWT_ISSUER",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "SESSION_SWEEP_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_FromYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8081
  env: production
database:
  url: postgres://localhost/app
jwt:
  access_secret: a
  access_ttl: 30m
  refresh_secret: r
  refresh_ttl: 14d
workers:
  session_sweep_interval: 30m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL.Std())
	assert.Equal(t, 14*24*time.Hour, cfg.JWT.RefreshTTL.Std())
	assert.Equal(t, "general", cfg.Upload.DefaultFolder)
	assert.Equal(t, 30*time.Minute, cfg.Workers.SessionSweepInterval.Std())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  url: postgres://localhost/app
jwt:
  access_secret: a
  refresh_secret: r
`)
	t.Setenv("DATABASE_URL", "postgres://db/override")
	t.Setenv("JWT_EXPIRES_IN", "5m")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "1d")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/override", cfg.Database.DSN)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL.Std())
	assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshTTL.Std())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_MissingFileUsesEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/app")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL.Std())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL.Std())
	assert.Zero(t, cfg.Workers.SessionSweepInterval.Std(), "session worker must be opt-in")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "DATABASE_URL"},
		{"same secrets", func(c *Config) { c.JWT.RefreshSecret = c.JWT.AccessSecret }, "must differ"},
		{"missing secret", func(c *Config) { c.JWT.AccessSecret = "" }, "required"},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database.driver"},
		{"zero ttl", func(c *Config) { c.JWT.AccessTTL = 0 }, "ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.DSN = "postgres://db"
			cfg.JWT.AccessSecret = "a"
			cfg.JWT.RefreshSecret = "r"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("7d")
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, d)

	d, err = ParseDuration("15m")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}
