package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.bothellselect.example")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.bothellselect.example", cfg.APIBaseURL)
	assert.Equal(t, "selectctl", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.NotEmpty(t, cfg.SQLitePath)
	assert.Equal(t, 5*time.Minute, cfg.SessionCheckInterval)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.OtelEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"API_BASE_URL=https://from-file.example\nSTORE_DRIVER=redis\nREDIS_ADDR=localhost:6379\nSESSION_CHECK_INTERVAL=30s\n",
	), 0o600))
	t.Setenv("API_BASE_URL", "https://from-env.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env.example", cfg.APIBaseURL)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.SessionCheckInterval)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{}},
		{"bad base url", map[string]string{"API_BASE_URL": "not a url"}},
		{"unknown driver", map[string]string{"API_BASE_URL": "https://x.example", "STORE_DRIVER": "etcd"}},
		{"redis without addr", map[string]string{"API_BASE_URL": "https://x.example", "STORE_DRIVER": "redis"}},
		{"bad log level", map[string]string{"API_BASE_URL": "https://x.example", "LOG_LEVEL": "loud"}},
		{"otel without endpoint", map[string]string{"API_BASE_URL": "https://x.example", "OTEL_ENABLED": "true"}},
		{"sample rate out of range", map[string]string{"API_BASE_URL": "https://x.example", "OTEL_SAMPLE_RATE": "2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("API_BASE_URL", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
