package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttractionStore = (*AttractionStore)(nil)

// AttractionStore implements driven.AttractionStore using PostgreSQL
type AttractionStore struct {
	db *DB
}

// NewAttractionStore creates a new AttractionStore
func NewAttractionStore(db *DB) *AttractionStore {
	return &AttractionStore{db: db}
}

// Create inserts a catalog entry
func (s *AttractionStore) Create(ctx context.Context, a *domain.Attraction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attractions (id, name, description, lat, lon, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Name, a.Description, a.Lat, a.Lon, a.Rating, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create attraction: %w", err)
	}
	return nil
}

// Get retrieves an attraction by id
func (s *AttractionStore) Get(ctx context.Context, id string) (*domain.Attraction, error) {
	var a domain.Attraction
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, lat, lon, rating, created_at
		FROM attractions WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Description, &a.Lat, &a.Lon, &a.Rating, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attraction: %w", err)
	}
	return &a, nil
}

// List retrieves the whole catalog
func (s *AttractionStore) List(ctx context.Context) ([]*domain.Attraction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, lat, lon, rating, created_at
		FROM attractions ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list attractions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Attraction
	for rows.Next() {
		var a domain.Attraction
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Lat, &a.Lon, &a.Rating, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attraction: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// UpdateRating stores a recomputed aggregate rating
func (s *AttractionStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE attractions SET rating = $2 WHERE id = $1`, id, rating)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
