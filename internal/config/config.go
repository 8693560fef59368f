// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath      string `env:"MENALANE_DB_PATH" envDefault:"./data/menalane.db"`
	TokenSecret string `env:"MENALANE_TOKEN_SECRET,required"`
	ServerHost  string `env:"MENALANE_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"MENALANE_SERVER_PORT" envDefault:"3000"`
	Env         string `env:"MENALANE_ENV" envDefault:"development"`
	LogLevel    string `env:"MENALANE_LOG_LEVEL" envDefault:"info"`
	UploadsDir  string `env:"MENALANE_UPLOADS_DIR" envDefault:"./uploads"`

	// CORS configuration
	FrontendOrigin string `env:"MENALANE_FRONTEND_ORIGIN" envDefault:"http://localhost:5173"`

	// Seeding configuration
	DoSeed        bool   `env:"MENALANE_DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"MENALANE_ADMIN_EMAIL" envDefault:"admin@menalane.com"`
	AdminPassword string `env:"MENALANE_ADMIN_PASSWORD" envDefault:"changeme"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinTokenSecretLength is the minimum required length for the token signing
// secret.
const MinTokenSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("MENALANE_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.TokenSecret == weak {
			return nil, fmt.Errorf("MENALANE_TOKEN_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.TokenSecret) {
		slog.Warn("MENALANE_TOKEN_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
