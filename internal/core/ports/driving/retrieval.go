package driving

import (
	"context"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// RetrievalService orchestrates document ingestion and similarity search
// over the configured backend and scoring mode.
type RetrievalService interface {
	// Backend reports the effective storage backend for this instance.
	// A pgvector configuration without a usable vector store reduces to
	// files at construction.
	Backend() domain.RAGBackend

	// NewSession opens a transactional session for the pgvector backend.
	// For the files backend it returns (nil, nil); passing a nil session to
	// read operations is then valid.
	NewSession(ctx context.Context) (driven.RAGSession, error)

	// Ingest validates the size cap and persists one document. With the
	// pgvector backend a nil session is a hard failure
	// (domain.ErrSessionRequired), never a silent redirect elsewhere.
	Ingest(ctx context.Context, req domain.IngestRequest, sess driven.RAGSession) (*domain.IngestReceipt, error)

	// IngestBatch processes items independently; one failed item never
	// aborts the rest.
	IngestBatch(ctx context.Context, items []domain.IngestRequest, sess driven.RAGSession) (*domain.BatchReceipt, error)

	// Search ranks stored documents against the query. An empty mode uses
	// the configured default. Scoring-mode trouble degrades and sets
	// FallbackUsed; it never surfaces as an error.
	Search(ctx context.Context, query string, k int, mode domain.SearchMode, sess driven.RAGSession) (*domain.SearchOutput, error)

	// GetContext folds the top results into a short text blob for a
	// downstream conversational component.
	GetContext(ctx context.Context, query string, sess driven.RAGSession) (string, error)
}
