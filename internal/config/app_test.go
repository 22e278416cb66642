package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("NODE_ENV", "")
		t.Setenv("APP_VERSION", "")
		t.Setenv("CORS_ORIGIN", "")

		cfg := LoadAppConfigFromEnv()
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "1.0.3", cfg.Version)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("NODE_ENV fallback", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("NODE_ENV", "production")

		cfg := LoadAppConfigFromEnv()
		assert.True(t, cfg.IsProduction())
	})

	t.Run("APP_ENV wins over NODE_ENV", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")
		t.Setenv("NODE_ENV", "production")

		cfg := LoadAppConfigFromEnv()
		assert.Equal(t, "staging", cfg.Environment)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("comma separated origins", func(t *testing.T) {
		t.Setenv("CORS_ORIGIN", "http://localhost:3000, https://teamup.example.com ,")

		cfg := LoadAppConfigFromEnv()
		assert.Equal(t, []string{"http://localhost:3000", "https://teamup.example.com"}, cfg.CORSOrigins)
	})
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    AppConfig
		wantError bool
	}{
		{
			name:   "valid",
			config: AppConfig{Environment: "development", CORSOrigins: []string{"*"}},
		},
		{
			name:      "empty environment",
			config:    AppConfig{CORSOrigins: []string{"*"}},
			wantError: true,
		},
		{
			name:      "no origins",
			config:    AppConfig{Environment: "production"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
