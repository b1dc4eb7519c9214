package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrDocTooLarge indicates a RAG document exceeded the configured size cap
	ErrDocTooLarge = errors.New("document too large")

	// ErrSessionRequired indicates the pgvector backend was used for a write
	// without a caller-supplied transactional session
	ErrSessionRequired = errors.New("transactional session required for pgvector backend")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenRevoked indicates the auth token was explicitly revoked
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSignature indicates a webhook payload failed signature verification
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrRateLimited indicates the client exceeded its request budget
	ErrRateLimited = errors.New("too many requests")
)
