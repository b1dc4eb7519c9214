package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driving"
	"github.com/visit-aqmola/aqmola-core/internal/rank"
)

// Ensure retrievalService implements RetrievalService
var _ driving.RetrievalService = (*retrievalService)(nil)

// RetrievalConfig holds the runtime configuration of one engine instance.
// An engine carries no other state, so instances are cheap to construct per
// request.
type RetrievalConfig struct {
	// MaxDocChars caps the character count of an ingested document body.
	MaxDocChars int

	// DefaultMode is the scoring strategy used when a search does not
	// override it.
	DefaultMode domain.SearchMode

	// DefaultBackend selects the storage substrate.
	DefaultBackend domain.RAGBackend

	// ContextK is the number of results folded into conversational context.
	ContextK int
}

// DefaultRetrievalConfig returns sensible defaults
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		MaxDocChars:    8000,
		DefaultMode:    domain.SearchModeLexical,
		DefaultBackend: domain.BackendFiles,
		ContextK:       3,
	}
}

// retrievalService implements the RetrievalService interface
type retrievalService struct {
	cfg      RetrievalConfig
	backend  domain.RAGBackend
	docs     driven.DocumentStore
	vectors  driven.VectorStore        // nil when not wired
	provider driven.EmbeddingProvider  // nil when not configured
	lexical  *rank.LexicalScorer
	tfidf    *rank.TFIDFScorer
	logger   *slog.Logger
}

// NewRetrievalService creates a RetrievalService. docs is the file-based
// store and is always required; vectors may be nil, in which case a pgvector
// default backend silently reduces to files for the instance's lifetime
// (a configuration/runtime mismatch, not an error). provider may be nil.
func NewRetrievalService(
	cfg RetrievalConfig,
	docs driven.DocumentStore,
	vectors driven.VectorStore,
	provider driven.EmbeddingProvider,
	logger *slog.Logger,
) driving.RetrievalService {
	if logger == nil {
		logger = slog.Default()
	}
	backend := cfg.DefaultBackend
	if backend == domain.BackendPGVector && vectors == nil {
		logger.Info("pgvector backend configured without a vector store, using files")
		backend = domain.BackendFiles
	}
	return &retrievalService{
		cfg:      cfg,
		backend:  backend,
		docs:     docs,
		vectors:  vectors,
		provider: provider,
		lexical:  rank.NewLexicalScorer(),
		tfidf:    rank.NewTFIDFScorer(),
		logger:   logger,
	}
}

// Backend reports the effective storage backend for this instance.
func (s *retrievalService) Backend() domain.RAGBackend {
	return s.backend
}

// NewSession opens a transactional session for the pgvector backend. The
// files backend needs none and returns (nil, nil).
func (s *retrievalService) NewSession(ctx context.Context) (driven.RAGSession, error) {
	if s.backend != domain.BackendPGVector {
		return nil, nil
	}
	return s.vectors.Begin(ctx)
}

// Ingest validates and persists one document. The size cap is checked
// before any storage mutation.
func (s *retrievalService) Ingest(ctx context.Context, req domain.IngestRequest, sess driven.RAGSession) (*domain.IngestReceipt, error) {
	if length := utf8.RuneCountInString(req.Text); length > s.cfg.MaxDocChars {
		return nil, domain.ErrDocumentTooLarge(req.Title, length, s.cfg.MaxDocChars)
	}

	doc := domain.NewDocument(req.Title, req.Text, req.Lang, req.Tags)

	if s.backend == domain.BackendPGVector {
		// The caller explicitly opted into this backend; silently writing
		// elsewhere would violate that intent.
		if sess == nil {
			return nil, domain.ErrSessionRequired
		}
		var vec []float64
		if s.cfg.DefaultMode == domain.SearchModeEmbedding && s.provider != nil {
			if res := s.provider.Embed(ctx, doc.Title+" "+doc.Text); res.OK() {
				vec = res.Vector
			}
		}
		if err := s.vectors.Upsert(ctx, sess, doc, vec); err != nil {
			return nil, fmt.Errorf("pgvector upsert: %w", err)
		}
		return &domain.IngestReceipt{ID: doc.ID, Title: doc.Title}, nil
	}

	stored, err := s.docs.Add(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	// Pre-compute the embedding at ingest time when the instance runs in
	// embedding mode. Never recompute one that is already cached: the
	// vector is a pure function of the immutable document content.
	if s.cfg.DefaultMode == domain.SearchModeEmbedding && s.provider != nil {
		if _, err := s.docs.GetEmbedding(ctx, stored.ID); err != nil {
			if res := s.provider.Embed(ctx, stored.Title+" "+stored.Text); res.OK() {
				if err := s.docs.PutEmbedding(ctx, stored.ID, res.Vector); err != nil {
					s.logger.Warn("failed to cache embedding at ingest", "doc_id", stored.ID, "error", err)
				}
			}
		}
	}

	return &domain.IngestReceipt{ID: stored.ID, Title: stored.Title}, nil
}

// IngestBatch processes items independently and tallies the outcome. A
// failed item is counted and skipped; it never aborts the batch.
func (s *retrievalService) IngestBatch(ctx context.Context, items []domain.IngestRequest, sess driven.RAGSession) (*domain.BatchReceipt, error) {
	receipt := &domain.BatchReceipt{IDs: []string{}}
	for _, item := range items {
		r, err := s.Ingest(ctx, item, sess)
		if err != nil {
			s.logger.Warn("batch item failed", "title", item.Title, "error", err)
			receipt.Fail++
			continue
		}
		receipt.OK++
		receipt.IDs = append(receipt.IDs, r.ID)
	}
	return receipt, nil
}

// Search ranks stored documents against the query with the selected mode.
func (s *retrievalService) Search(ctx context.Context, query string, k int, mode domain.SearchMode, sess driven.RAGSession) (*domain.SearchOutput, error) {
	if mode == "" {
		mode = s.cfg.DefaultMode
	}

	if s.backend == domain.BackendPGVector {
		out, err := s.searchVector(ctx, query, k, mode, sess)
		if err == nil {
			return out, nil
		}
		// Reads recover locally: re-execute against the file store and
		// flag the degradation.
		s.logger.Warn("pgvector search failed, re-executing on file store", "error", err)
		out, ferr := s.searchFiles(ctx, query, k, mode)
		if ferr != nil {
			return nil, ferr
		}
		out.FallbackUsed = true
		return out, nil
	}

	return s.searchFiles(ctx, query, k, mode)
}

// GetContext folds the top results into a short text blob for the
// conversational assistant. Empty string when nothing matches.
func (s *retrievalService) GetContext(ctx context.Context, query string, sess driven.RAGSession) (string, error) {
	out, err := s.Search(ctx, query, s.cfg.ContextK, "", sess)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		lines = append(lines, r.Title+": "+r.Snippet)
	}
	return strings.Join(lines, "\n"), nil
}

// searchFiles runs the selected scorer over the file-based store.
func (s *retrievalService) searchFiles(ctx context.Context, query string, k int, mode domain.SearchMode) (*domain.SearchOutput, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := &domain.SearchOutput{Query: query, Mode: mode}
	switch mode {
	case domain.SearchModeTFIDF:
		out.Results = s.tfidf.Score(query, docs, k)
	case domain.SearchModeEmbedding:
		scorer := rank.NewEmbeddingScorer(s.embedder(), s.docs, s.tfidf, s.logger)
		out.Results, out.FallbackUsed = scorer.Score(ctx, query, docs, k)
	default:
		out.Results = s.lexical.Score(query, docs, k)
	}
	return out, nil
}

// searchVector runs the selected scorer over rows read from the
// vector-capable backend. The scoring path is shared with the file backend,
// so results only depend on the stored data.
func (s *retrievalService) searchVector(ctx context.Context, query string, k int, mode domain.SearchMode, sess driven.RAGSession) (*domain.SearchOutput, error) {
	if sess == nil {
		return nil, domain.ErrSessionRequired
	}
	rows, err := s.vectors.ListAll(ctx, sess)
	if err != nil {
		return nil, err
	}

	docs := make([]*domain.Document, len(rows))
	cache := newRowCache(s.vectors, sess, s.logger)
	for i, row := range rows {
		docs[i] = row.Document
		if vec, ok := row.Cell.Decode(); ok {
			cache.vecs[row.Document.ID] = vec
		}
	}

	out := &domain.SearchOutput{Query: query, Mode: mode}
	switch mode {
	case domain.SearchModeTFIDF:
		out.Results = s.tfidf.Score(query, docs, k)
	case domain.SearchModeEmbedding:
		// Cache misses are computed once and written back through the
		// session, so the next search reads them from the store.
		scorer := rank.NewEmbeddingScorer(s.embedder(), cache, s.tfidf, s.logger)
		out.Results, out.FallbackUsed = scorer.Score(ctx, query, docs, k)
	default:
		out.Results = s.lexical.Score(query, docs, k)
	}
	return out, nil
}

// embedder adapts the optional provider for the rank package. Returning a
// typed nil interface would defeat the scorer's nil check.
func (s *retrievalService) embedder() rank.Embedder {
	if s.provider == nil {
		return nil
	}
	return s.provider
}

// rowCache holds embedding vectors decoded from backend rows and backfills
// newly computed ones through the session. A write-back failure only costs a
// recomputation on the next search, so it never fails the scorer.
type rowCache struct {
	vecs   map[string][]float64
	store  driven.VectorStore
	sess   driven.RAGSession
	logger *slog.Logger
}

func newRowCache(store driven.VectorStore, sess driven.RAGSession, logger *slog.Logger) *rowCache {
	return &rowCache{
		vecs:   make(map[string][]float64),
		store:  store,
		sess:   sess,
		logger: logger,
	}
}

func (c *rowCache) GetEmbedding(_ context.Context, id string) ([]float64, error) {
	if vec, ok := c.vecs[id]; ok {
		return vec, nil
	}
	return nil, domain.ErrNotFound
}

func (c *rowCache) PutEmbedding(ctx context.Context, id string, vec []float64) error {
	c.vecs[id] = vec
	if err := c.store.PutEmbedding(ctx, c.sess, id, vec); err != nil {
		c.logger.Warn("failed to backfill embedding", "doc_id", id, "error", err)
	}
	return nil
}
