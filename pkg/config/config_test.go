package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("DOCUMENTS_LIMIT", "")
	t.Setenv("AUTO_PROCESS", "")
	t.Setenv("AUTO_PROCESS_DELAY_MS", "")
	t.Setenv("SESSION_STORE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.Client.DocumentsLimit)
	assert.True(t, cfg.Client.AutoProcess)
	assert.Equal(t, 500*time.Millisecond, cfg.Client.AutoProcessDelay)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.NotEmpty(t, cfg.Client.CredentialsFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://fin.example.com")
	t.Setenv("DOCUMENTS_LIMIT", "10")
	t.Setenv("AUTO_PROCESS", "false")
	t.Setenv("SESSION_STORE", SessionStoreRedis)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://fin.example.com", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.Client.DocumentsLimit)
	assert.False(t, cfg.Client.AutoProcess)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
}

func TestLoad_InvalidLimitFallsBack(t *testing.T) {
	t.Setenv("DOCUMENTS_LIMIT", "abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Client.DocumentsLimit)
}
