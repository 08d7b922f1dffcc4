package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "wildlife_gallery", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.False(t, cfg.ForceHTTPS)
}

func TestLoadProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	t.Setenv("SESSION_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "too-short")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoadForceHTTPS(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("FORCE_HTTPS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ForceHTTPS)
}
