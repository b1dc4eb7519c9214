package rank

import (
	"context"
	"log/slog"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// Embedder converts text to a vector, reporting failures as tagged outcomes.
type Embedder interface {
	Embed(ctx context.Context, text string) domain.EmbedResult
}

// EmbeddingCache stores per-document embedding vectors. A vector is a pure
// function of immutable document content, so concurrent first-time
// computation is tolerated: last write wins, no lock required.
type EmbeddingCache interface {
	GetEmbedding(ctx context.Context, id string) ([]float64, error)
	PutEmbedding(ctx context.Context, id string, vec []float64) error
}

// EmbeddingScorer ranks documents by cosine similarity of embedding vectors.
// When the provider is absent or fails to embed the query, it delegates the
// whole call to the TF-IDF scorer; callers see that only through the
// returned fallback flag.
type EmbeddingScorer struct {
	provider Embedder // nil when no provider is configured
	cache    EmbeddingCache
	fallback *TFIDFScorer
	logger   *slog.Logger
}

// NewEmbeddingScorer creates an EmbeddingScorer. provider may be nil.
func NewEmbeddingScorer(provider Embedder, cache EmbeddingCache, fallback *TFIDFScorer, logger *slog.Logger) *EmbeddingScorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingScorer{
		provider: provider,
		cache:    cache,
		fallback: fallback,
		logger:   logger,
	}
}

// Score ranks docs against query by embedding cosine similarity. The second
// return value reports whether the call delegated to TF-IDF.
func (s *EmbeddingScorer) Score(ctx context.Context, query string, docs []*domain.Document, k int) ([]domain.SearchResult, bool) {
	if query == "" || k <= 0 || len(docs) == 0 {
		return []domain.SearchResult{}, false
	}

	if s.provider == nil {
		return s.fallback.Score(query, docs, k), true
	}

	qRes := s.provider.Embed(ctx, query)
	if !qRes.OK() {
		if qRes.Status == domain.EmbedTransient {
			s.logger.Warn("query embedding failed, delegating to tfidf", "error", qRes.Err)
		}
		return s.fallback.Score(query, docs, k), true
	}

	results := []domain.SearchResult{}
	for _, doc := range docs {
		vec := s.documentVector(ctx, doc)
		if len(vec) == 0 {
			continue
		}
		score := roundScore(Cosine(qRes.Vector, vec))
		if score > 0 {
			results = append(results, domain.SearchResult{
				ID:      doc.ID,
				Title:   doc.Title,
				Score:   score,
				Snippet: doc.Snippet(),
			})
		}
	}

	return rankResults(results, k), false
}

// documentVector fetches a cached embedding or computes and caches it on
// first use. An unreadable cache entry counts as a miss.
func (s *EmbeddingScorer) documentVector(ctx context.Context, doc *domain.Document) []float64 {
	if vec, err := s.cache.GetEmbedding(ctx, doc.ID); err == nil && len(vec) > 0 {
		return vec
	}

	res := s.provider.Embed(ctx, doc.Title+" "+doc.Text)
	if !res.OK() {
		return nil
	}
	if err := s.cache.PutEmbedding(ctx, doc.ID, res.Vector); err != nil {
		s.logger.Warn("failed to cache embedding", "doc_id", doc.ID, "error", err)
	}
	return res.Vector
}
