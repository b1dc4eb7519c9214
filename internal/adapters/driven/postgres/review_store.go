package postgres

import (
	"context"
	"fmt"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReviewStore = (*ReviewStore)(nil)

// ReviewStore implements driven.ReviewStore using PostgreSQL
type ReviewStore struct {
	db *DB
}

// NewReviewStore creates a new ReviewStore
func NewReviewStore(db *DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create inserts a review
func (s *ReviewStore) Create(ctx context.Context, r *domain.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, attraction_id, rating, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.ID, r.UserID, r.AttractionID, r.Rating, r.Text, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ListByAttraction retrieves all reviews of one attraction
func (s *ReviewStore) ListByAttraction(ctx context.Context, attractionID string) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, attraction_id, rating, body, created_at
		FROM reviews WHERE attraction_id = $1 ORDER BY created_at
	`, attractionID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []*domain.Review
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.AttractionID, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
