package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driving"
)

// Ensure catalogService implements CatalogService
var _ driving.CatalogService = (*catalogService)(nil)

// catalogService implements the CatalogService interface
type catalogService struct {
	attractions driven.AttractionStore
	bookings    driven.BookingStore
	reviews     driven.ReviewStore
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	attractions driven.AttractionStore,
	bookings driven.BookingStore,
	reviews driven.ReviewStore,
) driving.CatalogService {
	return &catalogService{
		attractions: attractions,
		bookings:    bookings,
		reviews:     reviews,
	}
}

// CreateAttraction adds a catalog entry
func (s *catalogService) CreateAttraction(ctx context.Context, a *domain.Attraction) (*domain.Attraction, error) {
	if a == nil || a.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := s.attractions.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAttractions returns the full catalog
func (s *catalogService) ListAttractions(ctx context.Context) ([]*domain.Attraction, error) {
	return s.attractions.List(ctx)
}

// CreateBooking reserves an attraction. The booking starts in pending status
// with a fresh payment order id for the provider to reference.
func (s *catalogService) CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if b == nil || b.UserID == "" || b.AttractionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if b.StartDate == "" || b.EndDate == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidInput)
	}

	// Booking an attraction that does not exist is a caller error.
	if _, err := s.attractions.Get(ctx, b.AttractionID); err != nil {
		return nil, err
	}

	b.ID = uuid.NewString()
	b.Status = domain.BookingPending
	b.PaymentOrderID = domain.NewPaymentOrderID()
	b.CreatedAt = time.Now().UTC()

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns all bookings of a user
func (s *catalogService) ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.bookings.ListByUser(ctx, userID)
}

// UpdateBookingStatus moves a booking through its lifecycle
func (s *catalogService) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if id == "" || !domain.ValidBookingStatus(status) {
		return domain.ErrInvalidInput
	}
	if _, err := s.bookings.Get(ctx, id); err != nil {
		return err
	}
	return s.bookings.UpdateStatus(ctx, id, status)
}

// CreateReview stores feedback and refreshes the attraction's aggregate
// rating
func (s *catalogService) CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	if r == nil || r.UserID == "" || r.AttractionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.attractions.Get(ctx, r.AttractionID); err != nil {
		return nil, err
	}

	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := s.refreshRating(ctx, r.AttractionID); err != nil {
		return nil, err
	}
	return r, nil
}

// refreshRating recomputes the mean rating from all stored reviews.
func (s *catalogService) refreshRating(ctx context.Context, attractionID string) error {
	reviews, err := s.reviews.ListByAttraction(ctx, attractionID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	mean = math.Round(mean*100) / 100

	return s.attractions.UpdateRating(ctx, attractionID, mean)
}

// ApplyPayment marks the booking matching the payment order id as paid.
// Notifications with a non-success status are acknowledged without changes.
func (s *catalogService) ApplyPayment(ctx context.Context, n domain.PaymentNotification) (*domain.Booking, error) {
	if n.OrderID == "" {
		return nil, domain.ErrInvalidInput
	}

	booking, err := s.bookings.GetByPaymentOrderID(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	if n.Status != "success" && n.Status != "paid" {
		return booking, nil
	}
	if booking.Status == domain.BookingPaid {
		return booking, nil
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingPaid); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingPaid
	return booking, nil
}
