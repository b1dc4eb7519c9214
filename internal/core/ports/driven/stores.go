package driven

import (
	"context"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// UserStore persists platform accounts
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AttractionStore persists the tourism catalog
type AttractionStore interface {
	Create(ctx context.Context, a *domain.Attraction) error
	Get(ctx context.Context, id string) (*domain.Attraction, error)
	List(ctx context.Context) ([]*domain.Attraction, error)
	UpdateRating(ctx context.Context, id string, rating float64) error
}

// BookingStore persists reservations
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	GetByPaymentOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// ReviewStore persists attraction reviews
type ReviewStore interface {
	Create(ctx context.Context, r *domain.Review) error
	ListByAttraction(ctx context.Context, attractionID string) ([]*domain.Review, error)
}
