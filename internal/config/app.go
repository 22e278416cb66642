package config

import (
	"fmt"
	"strings"
)

// EnvProduction is the environment name that switches the store connector to lazy mode.
const EnvProduction = "production"

// AppConfig holds application-level settings.
type AppConfig struct {
	// Environment is the runtime environment (development, production, ...).
	Environment string
	// Version is reported by the health endpoint.
	Version string
	// CORSOrigins lists the allowed cross-origin sources ("*" allows any).
	CORSOrigins []string
}

// LoadAppConfigFromEnv loads application configuration from environment variables.
// APP_ENV takes precedence over NODE_ENV, which older deployments still set.
func LoadAppConfigFromEnv() AppConfig {
	return AppConfig{
		Environment: GetEnvFirst("development", "APP_ENV", "NODE_ENV"),
		Version:     GetEnv("APP_VERSION", "1.0.3"),
		CORSOrigins: splitOrigins(GetEnv("CORS_ORIGIN", "*")),
	}
}

// IsProduction reports whether the application runs in production mode.
func (c AppConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate validates application configuration.
func (c AppConfig) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment must not be empty")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
