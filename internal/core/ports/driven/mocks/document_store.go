// Package mocks provides in-memory implementations of the driven ports
// for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Ensure MockDocumentStore implements DocumentStore
var _ driven.DocumentStore = (*MockDocumentStore)(nil)

// MockDocumentStore is an in-memory DocumentStore for testing
type MockDocumentStore struct {
	mu         sync.RWMutex
	docs       map[string]*domain.Document
	embeddings map[string][]float64
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs:       make(map[string]*domain.Document),
		embeddings: make(map[string][]float64),
	}
}

func (m *MockDocumentStore) Add(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.docs[doc.ID]; ok {
		return existing, nil
	}
	m.docs[doc.ID] = doc
	return doc, nil
}

func (m *MockDocumentStore) List(ctx context.Context) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		result = append(result, doc)
	}
	return result, nil
}

func (m *MockDocumentStore) GetEmbedding(ctx context.Context, id string) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vec, ok := m.embeddings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return vec, nil
}

func (m *MockDocumentStore) PutEmbedding(ctx context.Context, id string, vec []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddings[id] = vec
	return nil
}

// Len reports the number of stored documents.
func (m *MockDocumentStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
