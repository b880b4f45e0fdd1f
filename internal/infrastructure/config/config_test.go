package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret":  {},
		"unknown driver":  {"JWT_SECRET": "s", "STORAGE_DRIVER": "cassandra"},
		"sql without dsn": {"JWT_SECRET": "s", "STORAGE_DRIVER": "sql"},
		"bad duration":    {"JWT_SECRET": "s", "TOKEN_TTL": "soon"},
		"zero attempts":   {"JWT_SECRET": "s", "LOGIN_MAX_ATTEMPTS": "0"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_SQL(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s",
		"STORAGE_DRIVER": "sql",
		"SQL_DIALECT":    "sqlite",
		"SQL_DSN":        "file:test.db",
		"REDIS_ENABLED":  "false",
	}))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.SQL.Dialect)
	assert.False(t, cfg.Redis.Enabled)
}
