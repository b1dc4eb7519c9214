package driven

import (
	"context"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// DocumentStore persists RAG documents and their cached embedding vectors.
// It is the only owner of document state; the retrieval engine itself keeps
// no state beyond configuration.
type DocumentStore interface {
	// Add persists a document keyed by its content-derived id. Adding a
	// document whose id already exists is a no-op that returns the stored
	// copy and must not disturb an existing cached embedding.
	Add(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// List enumerates all stored documents. Order is not guaranteed and
	// callers must not rely on it.
	List(ctx context.Context) ([]*domain.Document, error)

	// GetEmbedding returns a cached embedding vector, or domain.ErrNotFound
	// when absent or unreadable.
	GetEmbedding(ctx context.Context, id string) ([]float64, error)

	// PutEmbedding caches an embedding vector, overwriting silently.
	PutEmbedding(ctx context.Context, id string, vec []float64) error
}
