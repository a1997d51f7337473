package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive (got %s)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl")
	}

	if err := c.Schedule.validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	return nil
}

func (s *ScheduleConfig) validate() error {
	if s.MaxOccurrences <= 0 {
		return fmt.Errorf("max_occurrences must be > 0 (got %d)", s.MaxOccurrences)
	}
	if s.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be > 0 (got %d)", s.HorizonDays)
	}
	return nil
}
