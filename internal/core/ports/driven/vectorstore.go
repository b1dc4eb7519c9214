package driven

import (
	"context"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// RAGSession is a caller-supplied transactional session for the
// vector-capable backend. Every pgvector ingest or search runs inside one;
// the caller decides when to commit.
type RAGSession interface {
	Commit() error
	Rollback() error
}

// VectorRow is a stored document together with its embedding cell as read
// from the vector-capable backend.
type VectorRow struct {
	Document *domain.Document
	Cell     domain.VectorCell
}

// VectorStore is the vector-capable storage backend for the retrieval
// engine. Implementations must reproduce the same brute-force cosine
// semantics as the file-based scorers, so search results are
// backend-agnostic for identical data.
type VectorStore interface {
	// Begin opens a transactional session. The caller owns its lifecycle.
	Begin(ctx context.Context) (RAGSession, error)

	// Upsert stores a document (idempotent on id) and, when non-nil, its
	// embedding vector.
	Upsert(ctx context.Context, sess RAGSession, doc *domain.Document, embedding []float64) error

	// ListAll reads every stored document with its embedding cell.
	ListAll(ctx context.Context, sess RAGSession) ([]VectorRow, error)

	// PutEmbedding fills the embedding cell of an existing row that has
	// none. Rows with a stored vector are left untouched.
	PutEmbedding(ctx context.Context, sess RAGSession, docID string, vec []float64) error
}
