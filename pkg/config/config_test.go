package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Padroes(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60*24*7, cfg.JWT.Expiration)
	assert.Equal(t, 15*time.Second, cfg.Lookup.Timeout)
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariaveisDeAmbiente(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("S3_BUCKET", "repcom-docs")
	t.Setenv("LOOKUP_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30, cfg.JWT.Expiration)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Lookup.Timeout)
}

func TestLoad_ProducaoExigeSegredo(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaSenha(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "repcom", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/repcom?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
