package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LOG_LEVEL", "DEFAULT_SCHEME", "SCHEME_FILE", "SCHEME_REGISTRY_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultSchemeID, cfg.DefaultSchemeID)
	assert.Empty(t, cfg.SchemeFiles)
	assert.Empty(t, cfg.SchemeRegistryURL)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DEFAULT_SCHEME", "custom")
	t.Setenv("SCHEME_FILE", "a.yaml, b.yaml,,")
	t.Setenv("SCHEME_REGISTRY_URL", "http://registry.local/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "custom", cfg.DefaultSchemeID)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.SchemeFiles)
	assert.Equal(t, "http://registry.local", cfg.SchemeRegistryURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port not numeric", "PORT", "eighty"},
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"registry not a url", "SCHEME_REGISTRY_URL", "not a url"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
		})
	}
}
