// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPort     = "8080"
	DefaultSchemeID = "cn-2019"
)

// Config holds the settings shared by the CLI commands and the HTTP server.
type Config struct {
	Port              string `validate:"required,numeric"`
	LogLevel          string `validate:"omitempty,oneof=debug info warn warning error"`
	DefaultSchemeID   string `validate:"required"`
	SchemeFiles       []string
	SchemeRegistryURL string `validate:"omitempty,url"`
}

// Load reads the configuration from environment variables. Call
// godotenv.Load first if a .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", DefaultPort),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DefaultSchemeID:   getEnv("DEFAULT_SCHEME", DefaultSchemeID),
		SchemeFiles:       splitList(os.Getenv("SCHEME_FILE")),
		SchemeRegistryURL: strings.TrimRight(os.Getenv("SCHEME_REGISTRY_URL"), "/"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList accepts a comma separated list of paths.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
