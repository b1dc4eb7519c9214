package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorStore = (*RAGStore)(nil)

// RAGStore implements the vector-capable RAG backend on PostgreSQL. Search
// is a brute-force scan: rows are read in full and scored by the same code
// path as the file backend, so results are backend-agnostic.
type RAGStore struct {
	db     *DB
	native bool // embedding column is a pgvector column
}

// NewRAGStore creates a new RAGStore
func NewRAGStore(db *DB) *RAGStore {
	return &RAGStore{db: db}
}

// DetectColumnType inspects the embedding column once at startup. With the
// pgvector extension installed the column is native; otherwise vectors are
// JSON-serialized into the text column.
func (s *RAGStore) DetectColumnType(ctx context.Context) error {
	var udt string
	err := s.db.QueryRowContext(ctx, `
		SELECT udt_name FROM information_schema.columns
		WHERE table_name = 'rag_documents' AND column_name = 'embedding'
	`).Scan(&udt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("rag_documents.embedding column missing")
	}
	if err != nil {
		return fmt.Errorf("inspect embedding column: %w", err)
	}
	s.native = udt == "vector"
	return nil
}

// ragSession wraps a database transaction as a caller-owned session.
type ragSession struct {
	tx *sql.Tx
}

func (s *ragSession) Commit() error   { return s.tx.Commit() }
func (s *ragSession) Rollback() error { return s.tx.Rollback() }

// Begin opens a transactional session. The caller owns commit/rollback.
func (s *RAGStore) Begin(ctx context.Context) (driven.RAGSession, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin rag session: %w", err)
	}
	return &ragSession{tx: tx}, nil
}

// txOf unwraps the session, distinguishing a wrong session kind from an
// absent one.
func txOf(sess driven.RAGSession) (*sql.Tx, error) {
	rs, ok := sess.(*ragSession)
	if !ok || rs.tx == nil {
		return nil, fmt.Errorf("incompatible session type %T", sess)
	}
	return rs.tx, nil
}

// Upsert stores a document keyed by doc_id. An existing row stays canonical:
// re-ingesting identical content is a no-op that preserves any stored
// embedding.
func (s *RAGStore) Upsert(ctx context.Context, sess driven.RAGSession, doc *domain.Document, embedding []float64) error {
	tx, err := txOf(sess)
	if err != nil {
		return err
	}

	cell, err := s.encodeVector(embedding)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rag_documents (doc_id, title, body, lang, tags, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (doc_id) DO NOTHING
	`,
		doc.ID,
		doc.Title,
		doc.Text,
		NullString(doc.Lang),
		strings.Join(doc.Tags, ","),
		cell,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert rag document: %w", err)
	}
	return nil
}

// PutEmbedding backfills the embedding cell of an existing row. A stored
// vector stays canonical, so concurrent writers cannot flip a cell.
func (s *RAGStore) PutEmbedding(ctx context.Context, sess driven.RAGSession, docID string, vec []float64) error {
	tx, err := txOf(sess)
	if err != nil {
		return err
	}

	cell, err := s.encodeVector(vec)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE rag_documents SET embedding = $2
		WHERE doc_id = $1 AND embedding IS NULL
	`, docID, cell)
	if err != nil {
		return fmt.Errorf("backfill embedding: %w", err)
	}
	return nil
}

// ListAll reads every stored document with its embedding cell.
func (s *RAGStore) ListAll(ctx context.Context, sess driven.RAGSession) ([]driven.VectorRow, error) {
	tx, err := txOf(sess)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT doc_id, title, body, lang, tags, embedding, created_at
		FROM rag_documents
	`)
	if err != nil {
		return nil, fmt.Errorf("list rag documents: %w", err)
	}
	defer rows.Close()

	var out []driven.VectorRow
	for rows.Next() {
		var (
			doc       domain.Document
			title     sql.NullString
			body      sql.NullString
			lang      sql.NullString
			tags      sql.NullString
			embedding sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(&doc.ID, &title, &body, &lang, &tags, &embedding, &createdAt); err != nil {
			return nil, fmt.Errorf("scan rag document: %w", err)
		}
		doc.Title = title.String
		doc.Text = body.String
		doc.Lang = lang.String
		doc.CreatedAt = createdAt
		doc.Tags = splitTags(tags.String)

		out = append(out, driven.VectorRow{
			Document: &doc,
			Cell:     s.decodeCell(embedding),
		})
	}
	return out, rows.Err()
}

// encodeVector renders a vector for the embedding column, or NULL when nil.
func (s *RAGStore) encodeVector(vec []float64) (sql.NullString, error) {
	if len(vec) == 0 {
		return sql.NullString{}, nil
	}
	if s.native {
		return sql.NullString{String: domain.EncodeVectorLiteral(vec), Valid: true}, nil
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("serialize embedding: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeCell tags the scanned value with its storage form.
func (s *RAGStore) decodeCell(v sql.NullString) domain.VectorCell {
	if !v.Valid || v.String == "" {
		return domain.MissingCell()
	}
	if s.native {
		return domain.NativeCell([]byte(v.String))
	}
	return domain.SerializedCell([]byte(v.String))
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
