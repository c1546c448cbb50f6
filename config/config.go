package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// concern-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual config files for
// details on available environment variables:
//   - auth.go: login, session and role-claim configuration
//   - redis.go: session store backend
//   - http.go: HTTP server configuration
//   - upstream.go: upstream portal API client
//   - observability.go: metrics exposure
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading from disk, in-memory sessions).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth AuthConfig

	Redis RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Upstream UpstreamConfig `envPrefix:"UPSTREAM_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.Upstream.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
