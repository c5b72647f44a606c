package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// JWTConfig holds configuration for bearer token issuing and verification.
type JWTConfig struct {
	Secret          string `env:"SECRET"`
	ExpirationHours int    `env:"EXPIRATION_HOURS" envDefault:"24"`
	Issuer          string `env:"ISSUER" envDefault:"career-guide"`
}

// NewJWTConfig reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default 24)
// and JWT_ISSUER from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	var cfg JWTConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "JWT_"}); err != nil {
		return nil, fmt.Errorf("invalid JWT configuration: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
