package auth

import (
	"fmt"
	"time"
)

const (
	defaultIssuer   = "tenant-admin-backend"
	defaultTokenTTL = time.Hour
)

// AuthConfig holds token verification settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// ValidateConfig validates the authentication configuration and fills defaults
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Issuer == "" {
		c.Issuer = defaultIssuer
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	return nil
}
