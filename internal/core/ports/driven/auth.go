package driven

import (
	"context"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// AuthAdapter handles password hashing and JWT operations
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password
	HashPassword(password string) (string, error)

	// VerifyPassword checks if a password matches a hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed token from claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a token and extracts claims
	ParseToken(token string) (*domain.TokenClaims, error)
}

// TokenDenylist records revoked token ids until their natural expiry.
type TokenDenylist interface {
	// Revoke marks a token id as invalid for ttl.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether a token id has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RateLimiter enforces a fixed-window request budget per key.
type RateLimiter interface {
	// Allow records a hit for key and reports whether it is within the
	// window's budget.
	Allow(ctx context.Context, key string, window time.Duration, max int) (bool, error)
}
