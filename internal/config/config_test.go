package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baltpermits/internal/permits"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, permits.DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1000, cfg.API.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PERMITS_API_ENDPOINT", "http://localhost:9090/query")
	t.Setenv("PERMITS_HTTP_TIMEOUT", "5")
	t.Setenv("PERMITS_PAGE_SIZE", "250")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/query", cfg.API.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 250, cfg.API.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("PERMITS_PAGE_SIZE", "5000")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			API: APIConfig{Endpoint: "http://example.test/query", Timeout: time.Second, PageSize: 100},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.API.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.API.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.API.PageSize = 0
	assert.Error(t, cfg.Validate())
}
