package mocks

import (
	"context"
	"sync"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

var (
	_ driven.AttractionStore = (*MockAttractionStore)(nil)
	_ driven.BookingStore    = (*MockBookingStore)(nil)
	_ driven.ReviewStore     = (*MockReviewStore)(nil)
)

// MockAttractionStore is an in-memory AttractionStore for testing
type MockAttractionStore struct {
	mu          sync.RWMutex
	attractions map[string]*domain.Attraction
}

// NewMockAttractionStore creates a new MockAttractionStore
func NewMockAttractionStore() *MockAttractionStore {
	return &MockAttractionStore{attractions: make(map[string]*domain.Attraction)}
}

func (m *MockAttractionStore) Create(ctx context.Context, a *domain.Attraction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attractions[a.ID] = a
	return nil
}

func (m *MockAttractionStore) Get(ctx context.Context, id string) (*domain.Attraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attractions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *MockAttractionStore) List(ctx context.Context) ([]*domain.Attraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Attraction, 0, len(m.attractions))
	for _, a := range m.attractions {
		result = append(result, a)
	}
	return result, nil
}

func (m *MockAttractionStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attractions[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Rating = rating
	return nil
}

// MockBookingStore is an in-memory BookingStore for testing
type MockBookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

// NewMockBookingStore creates a new MockBookingStore
func NewMockBookingStore() *MockBookingStore {
	return &MockBookingStore{bookings: make(map[string]*domain.Booking)}
}

func (m *MockBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
	return nil
}

func (m *MockBookingStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *MockBookingStore) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBookingStore) GetByPaymentOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.PaymentOrderID == orderID {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

// MockReviewStore is an in-memory ReviewStore for testing
type MockReviewStore struct {
	mu      sync.RWMutex
	reviews []*domain.Review
}

// NewMockReviewStore creates a new MockReviewStore
func NewMockReviewStore() *MockReviewStore {
	return &MockReviewStore{}
}

func (m *MockReviewStore) Create(ctx context.Context, r *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *MockReviewStore) ListByAttraction(ctx context.Context, attractionID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Review
	for _, r := range m.reviews {
		if r.AttractionID == attractionID {
			result = append(result, r)
		}
	}
	return result, nil
}
