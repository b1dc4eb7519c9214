package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.BookingStore = (*BookingStore)(nil)

// BookingStore implements driven.BookingStore using PostgreSQL
type BookingStore struct {
	db *DB
}

// NewBookingStore creates a new BookingStore
func NewBookingStore(db *DB) *BookingStore {
	return &BookingStore{db: db}
}

const bookingColumns = `id, user_id, attraction_id, start_date, end_date, status, payment_order_id, created_at`

// Create inserts a reservation
func (s *BookingStore) Create(ctx context.Context, b *domain.Booking) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, b.ID, b.UserID, b.AttractionID, b.StartDate, b.EndDate, b.Status, b.PaymentOrderID, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// Get retrieves a booking by id
func (s *BookingStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

// GetByPaymentOrderID retrieves the booking tied to a payment order
func (s *BookingStore) GetByPaymentOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE payment_order_id = $1`, orderID))
}

// ListByUser retrieves all bookings of one user
func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking through its lifecycle
func (s *BookingStore) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *BookingStore) scanOne(row *sql.Row) (*domain.Booking, error) {
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func scanBooking(r rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var orderID sql.NullString
	err := r.Scan(&b.ID, &b.UserID, &b.AttractionID, &b.StartDate, &b.EndDate, &b.Status, &orderID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.PaymentOrderID = orderID.String
	return &b, nil
}
