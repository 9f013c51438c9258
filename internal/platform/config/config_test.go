package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDevelopmentDefaults(t *testing.T) {
	t.Setenv("GATEWAY_ENV", "development")
	t.Setenv("GATEWAY_JWT_SECRET", "")
	t.Setenv("GATEWAY_COOKIE_SECRET", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Addr)
	assert.NotEmpty(t, cfg.GatewayJWTSecret)
	assert.NotEmpty(t, cfg.CookieSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.CookieMaxAge)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestFromEnvRefusesToStartWithoutSecrets(t *testing.T) {
	t.Setenv("GATEWAY_ENV", "production")
	t.Setenv("GATEWAY_JWT_SECRET", "")
	t.Setenv("GATEWAY_COOKIE_SECRET", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GATEWAY_JWT_SECRET")
}

func TestFromEnvParsesOrigins(t *testing.T) {
	t.Setenv("GATEWAY_ENV", "development")
	t.Setenv("GATEWAY_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}
