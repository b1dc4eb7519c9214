package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore   driven.UserStore
	authAdapter driven.AuthAdapter
	denylist    driven.TokenDenylist
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	authAdapter driven.AuthAdapter,
	denylist driven.TokenDenylist,
	tokenTTL time.Duration,
) driving.AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		userStore:   userStore,
		authAdapter: authAdapter,
		denylist:    denylist,
		tokenTTL:    tokenTTL,
	}
}

// Register creates an account with a hashed password
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleUser
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrInvalidInput)
	}

	hash, err := s.authAdapter.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a JWT
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		JTI:       uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// ValidateToken parses a token, checks the revocation list and returns
// the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	return &domain.AuthContext{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		JTI:    claims.JTI,
	}, nil
}

// Revoke invalidates a token before its natural expiry. The denylist entry
// only needs to outlive the token itself.
func (s *authService) Revoke(ctx context.Context, token string) error {
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return err
	}

	ttl := claims.TTL()
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.JTI, ttl)
}
