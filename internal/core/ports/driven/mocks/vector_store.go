package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Ensure MockVectorStore implements VectorStore
var _ driven.VectorStore = (*MockVectorStore)(nil)

// MockSession records commit/rollback calls
type MockSession struct {
	Committed  bool
	RolledBack bool
}

func (s *MockSession) Commit() error {
	s.Committed = true
	return nil
}

func (s *MockSession) Rollback() error {
	s.RolledBack = true
	return nil
}

// MockVectorStore is an in-memory VectorStore for testing. Vectors are
// stored as serialized cells to exercise the decode path.
type MockVectorStore struct {
	mu       sync.Mutex
	rows     map[string]driven.VectorRow
	failList bool
	Sessions []*MockSession
}

// NewMockVectorStore creates a new MockVectorStore
func NewMockVectorStore() *MockVectorStore {
	return &MockVectorStore{rows: make(map[string]driven.VectorRow)}
}

func (m *MockVectorStore) Begin(ctx context.Context) (driven.RAGSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := &MockSession{}
	m.Sessions = append(m.Sessions, sess)
	return sess, nil
}

func (m *MockVectorStore) Upsert(ctx context.Context, sess driven.RAGSession, doc *domain.Document, embedding []float64) error {
	if sess == nil {
		return domain.ErrSessionRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[doc.ID]; ok {
		return nil
	}
	cell := domain.MissingCell()
	if embedding != nil {
		cell = domain.SerializedCell([]byte(domain.EncodeVectorLiteral(embedding)))
	}
	m.rows[doc.ID] = driven.VectorRow{Document: doc, Cell: cell}
	return nil
}

func (m *MockVectorStore) PutEmbedding(ctx context.Context, sess driven.RAGSession, docID string, vec []float64) error {
	if sess == nil {
		return domain.ErrSessionRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[docID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, has := row.Cell.Decode(); has {
		return nil
	}
	row.Cell = domain.SerializedCell([]byte(domain.EncodeVectorLiteral(vec)))
	m.rows[docID] = row
	return nil
}

func (m *MockVectorStore) ListAll(ctx context.Context, sess driven.RAGSession) ([]driven.VectorRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, fmt.Errorf("vector store unavailable")
	}
	result := make([]driven.VectorRow, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, row)
	}
	return result, nil
}

// SetFailList makes ListAll return an error.
func (m *MockVectorStore) SetFailList(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failList = v
}

// Len reports the number of stored rows.
func (m *MockVectorStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
