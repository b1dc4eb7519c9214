// Package filestore implements the file-based RAG document store: one JSON
// file per document plus a sidecar file per cached embedding vector.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*Store)(nil)

const (
	docSuffix   = ".json"
	embedSuffix = ".emb.json"
)

// Store persists documents under a single directory, keyed by document id.
type Store struct {
	dir string
}

// NewStore creates the data directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) docPath(id string) string {
	return filepath.Join(s.dir, id+docSuffix)
}

func (s *Store) embedPath(id string) string {
	return filepath.Join(s.dir, id+embedSuffix)
}

// Add persists a document. When a document with the same id already exists
// the earlier copy stays canonical and its cached embedding is untouched.
func (s *Store) Add(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	path := s.docPath(doc.ID)

	if data, err := os.ReadFile(path); err == nil {
		var existing domain.Document
		if err := json.Unmarshal(data, &existing); err == nil {
			return &existing, nil
		}
		// Corrupt file: fall through and rewrite it.
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return doc, nil
}

// List enumerates all stored documents in directory order, which callers
// must treat as unordered. Unreadable files are skipped.
func (s *Store) List(_ context.Context) ([]*domain.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	docs := []*domain.Document{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, docSuffix) || strings.HasSuffix(name, embedSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var doc domain.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// embedFile is the on-disk shape of a cached embedding.
type embedFile struct {
	Embedding []float64 `json:"embedding"`
}

// GetEmbedding reads a cached vector. A missing or malformed cache entry is
// reported as domain.ErrNotFound so callers recompute, never fail.
func (s *Store) GetEmbedding(_ context.Context, id string) ([]float64, error) {
	data, err := os.ReadFile(s.embedPath(id))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var ef embedFile
	if err := json.Unmarshal(data, &ef); err != nil || len(ef.Embedding) == 0 {
		return nil, domain.ErrNotFound
	}
	return ef.Embedding, nil
}

// PutEmbedding caches a vector, overwriting silently.
func (s *Store) PutEmbedding(_ context.Context, id string, vec []float64) error {
	data, err := json.Marshal(embedFile{Embedding: vec})
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}
	if err := os.WriteFile(s.embedPath(id), data, 0o644); err != nil {
		return fmt.Errorf("write embedding: %w", err)
	}
	return nil
}
