package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid config",
			config: Config{DatabaseURL: "postgresql://localhost/beautybook", Auth0Domain: "tenant.auth0.com"},
		},
		{
			name:    "missing database url",
			config:  Config{Auth0Domain: "tenant.auth0.com"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "missing auth0 domain",
			config:  Config{DatabaseURL: "postgresql://localhost/beautybook"},
			wantErr: "AUTH0_DOMAIN is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://localhost/beautybook_test")
	t.Setenv("AUTH0_DOMAIN", "tenant.auth0.com")
	t.Setenv("GO_ENV", "test")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}
