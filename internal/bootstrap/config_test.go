package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/net4grad/alumni-web/config"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.edu/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, config.SessionBackendMemory, cfg.Auth.SessionBackend)
	assert.Equal(t, "https://api.example.edu", cfg.Upstream.BaseURL)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		auth    config.AuthConfig
		wantErr bool
	}{
		{name: "asserted roles allowed", auth: config.AuthConfig{AllowAssertedRole: true}},
		{name: "verified claims only", auth: config.AuthConfig{TokenSecret: "s3cret"}},
		{name: "no way to resolve a role", auth: config.AuthConfig{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(&config.AppConfig{Auth: tt.auth})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, ValidateConfig(nil))
}
