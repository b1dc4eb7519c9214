package driving

import (
	"context"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// AuthService manages accounts and token lifecycle
type AuthService interface {
	// Register creates an account with a hashed password
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)

	// Login verifies credentials and issues a JWT
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken parses a token, checks the revocation list and returns
	// the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Revoke invalidates a token before its natural expiry
	Revoke(ctx context.Context, token string) error
}

// CatalogService manages attractions, bookings and reviews
type CatalogService interface {
	CreateAttraction(ctx context.Context, a *domain.Attraction) (*domain.Attraction, error)
	ListAttractions(ctx context.Context) ([]*domain.Attraction, error)

	CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error

	// CreateReview stores feedback and refreshes the attraction's
	// aggregate rating
	CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error)

	// ApplyPayment marks the booking matching the payment order id as paid
	ApplyPayment(ctx context.Context, n domain.PaymentNotification) (*domain.Booking, error)
}

// AssistantService answers tourist questions, optionally grounded in
// retrieved documents
type AssistantService interface {
	Ask(ctx context.Context, prompt, lang string) (string, error)
}
