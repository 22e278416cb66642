// Package config provides application configuration loaded from the environment.
package config

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Config is the teamup API configuration.
type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	// App holds environment, version and CORS settings.
	App AppConfig
	// GinMode is passed to gin.SetMode.
	GinMode string
}

// LoadFromEnv reads every section from the environment.
func LoadFromEnv() Config {
	return Config{
		Server:  LoadServerConfigFromEnv(),
		Logger:  LoadLoggerConfigFromEnv(),
		App:     LoadAppConfigFromEnv(),
		GinMode: GetEnv("GIN_MODE", gin.ReleaseMode),
	}
}

// Validate checks each section in order and reports the first failure.
func (c Config) Validate() error {
	sections := []struct {
		name  string
		check func() error
	}{
		{"server", c.Server.Validate},
		{"logger", c.Logger.Validate},
		{"app", c.App.Validate},
		{"gin", c.validateGinMode},
	}
	for _, s := range sections {
		if err := s.check(); err != nil {
			return fmt.Errorf("%s config: %w", s.name, err)
		}
	}
	return nil
}

func (c Config) validateGinMode() error {
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid GIN_MODE %q (want %s, %s or %s)",
			c.GinMode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}
