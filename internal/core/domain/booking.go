package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attraction is a catalog entry: a sight, park, hotel or other place a
// tourist can visit or book.
type Attraction struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingStatus tracks the booking payment lifecycle
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known status value.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingPaid, BookingCancelled:
		return true
	}
	return false
}

// Booking represents a reservation of an attraction
type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	AttractionID   string        `json:"attraction_id"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	Status         BookingStatus `json:"status"`
	PaymentOrderID string        `json:"payment_order_id"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewPaymentOrderID generates an external payment reference. The timestamp
// prefix keeps ids sortable in payment-provider dashboards.
func NewPaymentOrderID() string {
	return fmt.Sprintf("PO-%s-%s",
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8])
}

// Review is user feedback on an attraction, rating 1..5.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AttractionID string    `json:"attraction_id"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks review invariants.
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be 1..5", ErrInvalidInput)
	}
	return nil
}

// PaymentNotification is the payload received from the payment provider
// webhook after signature verification.
type PaymentNotification struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Amount  int64  `json:"amount,omitempty"`
}
