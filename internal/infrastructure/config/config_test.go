package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hotel-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "memory", cfg.Idempotency.Store)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, time.Hour, cfg.Promotion.ExpirySweepInterval)
	assert.False(t, cfg.Promotion.ExpirySweepEnabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOTEL_APP_PORT", "9090")
	t.Setenv("HOTEL_DATABASE_PASSWORD", "secret")
	t.Setenv("HOTEL_IDEMPOTENCY_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, time.Hour, cfg.Idempotency.TTL)
}

func TestLoadRejectsUnknownIdempotencyStore(t *testing.T) {
	t.Setenv("HOTEL_IDEMPOTENCY_STORE", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idempotency.store")
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("HOTEL_APP_ENV", "production")

	t.Run("requires a database password", func(t *testing.T) {
		t.Setenv("HOTEL_DATABASE_PASSWORD", "")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("rejects disabled ssl", func(t *testing.T) {
		t.Setenv("HOTEL_DATABASE_PASSWORD", "secret")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("accepts a hardened setup", func(t *testing.T) {
		t.Setenv("HOTEL_DATABASE_PASSWORD", "secret")
		t.Setenv("HOTEL_DATABASE_SSLMODE", "require")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "hotel",
		Password: "p@ss/word",
		DBName:   "hotel",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word")
}
