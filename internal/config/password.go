package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Bounds on BCRYPT_COST. Below 10 is too weak for account passwords; above
// 14 makes login latency unacceptable on the dashboard.
const (
	minBcryptCost     = 10
	maxBcryptCost     = 14
	defaultBcryptCost = 12
)

// PasswordConfig hashes and verifies account passwords. An optional pepper
// from the environment is appended before hashing so leaked database rows
// alone are not crackable offline.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig reads BCRYPT_COST (default 12) and PASSWORD_PEPPER
// (optional) from the environment.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost := defaultBcryptCost
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		parsed, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cost = parsed
	}
	if cost < minBcryptCost || cost > maxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", cost, minBcryptCost, maxBcryptCost)
	}

	return &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}, nil
}

// HashPassword returns the bcrypt hash of the peppered password.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.peppered(pw)), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches the stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(c.peppered(pw))) == nil
}

func (c *PasswordConfig) peppered(pw string) string {
	return pw + c.Pepper
}
