package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/net4grad/alumni-web/config"
)

// InitLogger initializes the structured logger. Development builds log at
// debug level.
func InitLogger(isDev bool) *slog.Logger {
	level := slog.LevelInfo
	if isDev {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects combinations that leave the portal unable to
// resolve roles or keep sessions.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if !cfg.Auth.ClaimVerificationEnabled() && !cfg.Auth.AllowAssertedRole {
		return errors.New("AUTH_TOKEN_SECRET is required when AUTH_ALLOW_ASSERTED_ROLE=false")
	}
	if cfg.Auth.SessionBackend == config.SessionBackendMemory && !cfg.IsDev {
		slog.Default().Warn("in-memory sessions do not survive restarts or span instances",
			"session_backend", cfg.Auth.SessionBackend)
	}
	return nil
}
