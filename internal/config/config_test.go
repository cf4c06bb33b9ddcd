package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	t.Run("postgres section", func(t *testing.T) {
		path := writeSecrets(t, `
connections:
  catalog:
    dialect: Postgres
    host: db.local
    port: 5432
    database: paintings
    username: catalog
    password: s3cret
`)
		c, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres", c.Dialect)
		assert.Equal(t, "db.local", c.Host)
		assert.Equal(t, 5432, c.Port)
		assert.Equal(t, "paintings", c.Database)
		assert.Equal(t, "catalog", c.Username)
		assert.Equal(t, "s3cret", c.Password)
	})

	t.Run("dialect defaults to postgres", func(t *testing.T) {
		path := writeSecrets(t, `
connections:
  catalog:
    host: localhost
    port: 5432
    database: paintings
    username: catalog
`)
		c, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres", c.Dialect)
	})

	t.Run("sqlite only needs a database path", func(t *testing.T) {
		path := writeSecrets(t, `
connections:
  catalog:
    dialect: sqlite
    database: ./catalog.db
`)
		c, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, "./catalog.db", c.Database)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeSecrets(t, "connections: [catalog\n")
		_, err := LoadCredentials(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse secrets file")
	})

	t.Run("missing section", func(t *testing.T) {
		path := writeSecrets(t, "connections:\n  other:\n    host: x\n")
		_, err := LoadCredentials(path)
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		path := writeSecrets(t, "connections:\n  catalog:\n    dialect: mysql\n    host: x\n")
		_, err := LoadCredentials(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port, database, username")
	})

	t.Run("unknown dialect", func(t *testing.T) {
		path := writeSecrets(t, "connections:\n  catalog:\n    dialect: oracle\n    database: x\n")
		_, err := LoadCredentials(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"APP_ENV", "APP_PORT", "CATALOG_SECRETS", "LOG_LEVEL", "JWT_SECRET", "RABBITMQ_URL", "AMQP_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultSecretsPath, cfg.SecretsPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.AMQPURL)
}

func TestAMQPURLPrecedence(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "amqp://rabbit")
	t.Setenv("AMQP_URL", "amqp://other")
	assert.Equal(t, "amqp://rabbit", AMQPURL())

	t.Setenv("RABBITMQ_URL", "")
	assert.Equal(t, "amqp://other", AMQPURL())
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestRedisAddr(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	assert.Empty(t, RedisAddr())

	t.Setenv("REDIS_ADDR", "cache:6379")
	assert.Equal(t, "cache:6379", RedisAddr())

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	assert.Equal(t, "redis:6380", RedisAddr())
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
