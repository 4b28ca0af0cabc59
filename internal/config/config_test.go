package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "http://localhost:8080/v1", cfg.APIURL)
	assert.Equal(t, cfg.APIURL, cfg.AuthURL, "auth falls back to the api url")
	assert.Equal(t, SummarizeDetached, cfg.SummarizeMode)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(15*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "application/pdf", cfg.AcceptedUploadType)
	assert.Equal(t, "sqlite", cfg.CacheBackend)
	assert.False(t, cfg.Production())
}

func TestLoadConfig_Environment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("API_URL", " https://chat.example.com/v1/ ")
	t.Setenv("AUTH_URL", "https://auth.example.com/")
	t.Setenv("SUMMARIZE_MODE", "await")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://chat.example.com/v1", cfg.APIURL)
	assert.Equal(t, "https://auth.example.com", cfg.AuthURL)
	assert.Equal(t, SummarizeAwait, cfg.SummarizeMode)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.True(t, cfg.Production())
}

func TestNormalize_Rejects(t *testing.T) {
	valid := func() Config {
		return Config{APIURL: "http://x", MaxUploadBytes: 1}
	}
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty api url", mutate: func(c *Config) { c.APIURL = " / " }},
		{name: "unknown summarize mode", mutate: func(c *Config) { c.SummarizeMode = "sometimes" }},
		{name: "unknown cache backend", mutate: func(c *Config) { c.CacheBackend = "memcached" }},
		{name: "non positive upload limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)

			assert.Error(t, cfg.normalize())
		})
	}
}
