// Package auth implements password hashing and JWT issuance.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

var _ driven.AuthAdapter = (*Adapter)(nil)

// Adapter signs and verifies HS256 tokens and hashes passwords with bcrypt.
type Adapter struct {
	secret []byte
}

// NewAdapter creates an auth adapter around a signing secret.
func NewAdapter(secret string) *Adapter {
	return &Adapter{secret: []byte(secret)}
}

// HashPassword hashes a plain password with bcrypt's default cost.
func (a *Adapter) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plain password against its bcrypt hash.
func (a *Adapter) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type jwtClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs the claims with HS256.
func (a *Adapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	payload := jwtClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ID:        claims.JTI,
			IssuedAt:  jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the signature and expiry and extracts the claims.
func (a *Adapter) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	payload, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.TokenClaims{
		UserID: payload.Subject,
		Email:  payload.Email,
		Role:   domain.Role(payload.Role),
		JTI:    payload.ID,
	}
	if payload.IssuedAt != nil {
		out.IssuedAt = payload.IssuedAt.Unix()
	}
	if payload.ExpiresAt != nil {
		out.ExpiresAt = payload.ExpiresAt.Unix()
	}
	return out, nil
}
