package domain

import "time"

// Role defines user permission level
type Role string

const (
	RoleUser           Role = "user"            // Book, review, search
	RoleAdmin          Role = "admin"           // Full access
	RoleModerator      Role = "moderator"       // Booking/complaint moderation
	RoleContentManager Role = "content-manager" // RAG content ingestion
)

// User represents a platform account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthContext contains authenticated user info for request context
type AuthContext struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	JTI    string `json:"jti"`
}

// IsAdmin checks if the authenticated user is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole checks membership in a role set
func (a *AuthContext) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	JTI       string `json:"jti"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TTL returns the remaining lifetime of the token.
func (c *TokenClaims) TTL() time.Duration {
	return time.Until(time.Unix(c.ExpiresAt, 0))
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// RevokeRequest asks for a token to be invalidated before expiry
type RevokeRequest struct {
	Token string `json:"token"`
}
