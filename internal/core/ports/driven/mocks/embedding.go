package mocks

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Ensure MockEmbeddingProvider implements EmbeddingProvider
var _ driven.EmbeddingProvider = (*MockEmbeddingProvider)(nil)

// MockEmbeddingProvider produces deterministic token-count vectors so cosine
// similarity in tests reflects actual lexical overlap.
type MockEmbeddingProvider struct {
	mu          sync.Mutex
	dimensions  int
	unavailable bool
	failNext    bool
	embedCalls  int
}

// NewMockEmbeddingProvider creates a new MockEmbeddingProvider
func NewMockEmbeddingProvider() *MockEmbeddingProvider {
	return &MockEmbeddingProvider{dimensions: 16}
}

// Embed produces a deterministic vector. Each lowercase token hashes to a
// dimension bucket, so texts sharing words share vector mass.
func (m *MockEmbeddingProvider) Embed(ctx context.Context, text string) domain.EmbedResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++

	if m.unavailable {
		return domain.EmbedNotAvailable()
	}
	if m.failNext {
		m.failNext = false
		return domain.EmbedFailed(fmt.Errorf("transient embedding failure"))
	}

	vec := make([]float64, m.dimensions)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%m.dimensions]++
	}
	return domain.EmbedVector(vec)
}

func (m *MockEmbeddingProvider) Dimensions() int {
	return m.dimensions
}

// EmbedCalls reports how many times Embed was invoked.
func (m *MockEmbeddingProvider) EmbedCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls
}

// SetUnavailable makes every Embed call report provider unavailability.
func (m *MockEmbeddingProvider) SetUnavailable(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = v
}

// SetFailNext makes the next Embed call report a transient failure.
func (m *MockEmbeddingProvider) SetFailNext(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = v
}

// SetDimensions overrides the vector length.
func (m *MockEmbeddingProvider) SetDimensions(dim int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions = dim
}
