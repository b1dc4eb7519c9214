package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven/mocks"
)

func newTestEngine(cfg RetrievalConfig, vectors *mocks.MockVectorStore, provider *mocks.MockEmbeddingProvider) (*mocks.MockDocumentStore, *retrievalService) {
	docs := mocks.NewMockDocumentStore()
	// Assign through interface variables so a nil pointer stays a nil
	// interface.
	var vs driven.VectorStore
	if vectors != nil {
		vs = vectors
	}
	var ep driven.EmbeddingProvider
	if provider != nil {
		ep = provider
	}
	svc := NewRetrievalService(cfg, docs, vs, ep, nil).(*retrievalService)
	return docs, svc
}

func seedCorpus(t *testing.T, svc *retrievalService) {
	t.Helper()
	items := []domain.IngestRequest{
		{Title: "Burabay National Park", Text: "Lakes and pine forests around lake Borovoe with hiking trails"},
		{Title: "Kokshetau City Guide", Text: "Regional center with a lakeside promenade and history museum"},
		{Title: "Zerenda Resort", Text: "Quiet village resort with a sandy beach on lake Zerenda"},
	}
	receipt, err := svc.IngestBatch(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("failed to seed corpus: %v", err)
	}
	if receipt.OK != 3 {
		t.Fatalf("expected 3 ingested, got %d ok %d fail", receipt.OK, receipt.Fail)
	}
}

func TestRetrievalService_IngestSizeCap(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.MaxDocChars = 10
	docs, svc := newTestEngine(cfg, nil, nil)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, domain.IngestRequest{Title: "Big", Text: "elevenchars"}, nil)
	if !errors.Is(err, domain.ErrDocTooLarge) {
		t.Fatalf("expected ErrDocTooLarge, got %v", err)
	}
	// Rejection happens before any mutation.
	if docs.Len() != 0 {
		t.Errorf("expected store untouched after rejection, got %d docs", docs.Len())
	}

	// Exactly at the cap is accepted.
	if _, err := svc.Ingest(ctx, domain.IngestRequest{Title: "Fit", Text: "exactlyten"}, nil); err != nil {
		t.Errorf("unexpected error at cap: %v", err)
	}
}

func TestRetrievalService_IngestCountsRunesNotBytes(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.MaxDocChars = 10
	_, svc := newTestEngine(cfg, nil, nil)

	// Ten Cyrillic characters are twenty bytes but must pass the cap.
	if _, err := svc.Ingest(context.Background(), domain.IngestRequest{Title: "KZ", Text: "Кокшетаноч"}, nil); err != nil {
		t.Errorf("unexpected error for multi-byte text at cap: %v", err)
	}
}

func TestRetrievalService_IngestIdempotent(t *testing.T) {
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, nil)
	ctx := context.Background()

	r1, err := svc.Ingest(ctx, domain.IngestRequest{Title: "Burabay", Text: "Lakes"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := svc.Ingest(ctx, domain.IngestRequest{Title: "Burabay", Text: "Lakes"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.ID != r2.ID {
		t.Errorf("expected identical ids for identical content, got %s and %s", r1.ID, r2.ID)
	}
}

func TestRetrievalService_IngestBatchIsolatesFailures(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.MaxDocChars = 20
	_, svc := newTestEngine(cfg, nil, nil)

	items := []domain.IngestRequest{
		{Title: "Good", Text: "short text"},
		{Title: "Bad", Text: "this text is definitely longer than twenty characters"},
		{Title: "Also good", Text: "fits fine"},
	}
	receipt, err := svc.IngestBatch(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.OK != 2 || receipt.Fail != 1 {
		t.Errorf("expected 2 ok / 1 fail, got %d / %d", receipt.OK, receipt.Fail)
	}
	if len(receipt.IDs) != 2 {
		t.Errorf("expected 2 ids, got %d", len(receipt.IDs))
	}
}

func TestRetrievalService_SearchModes(t *testing.T) {
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, nil)
	seedCorpus(t, svc)
	ctx := context.Background()

	for _, mode := range []domain.SearchMode{domain.SearchModeLexical, domain.SearchModeTFIDF} {
		out, err := svc.Search(ctx, "burabay lake", 5, mode, nil)
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", mode, err)
		}
		if out.Mode != mode {
			t.Errorf("mode %s: reported mode %s", mode, out.Mode)
		}
		if out.FallbackUsed {
			t.Errorf("mode %s: unexpected fallback flag", mode)
		}
		if len(out.Results) == 0 {
			t.Errorf("mode %s: expected results", mode)
		}
	}
}

func TestRetrievalService_SearchKZeroReturnsEmpty(t *testing.T) {
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, nil)
	seedCorpus(t, svc)
	ctx := context.Background()

	for _, mode := range []domain.SearchMode{domain.SearchModeLexical, domain.SearchModeTFIDF, domain.SearchModeEmbedding} {
		out, err := svc.Search(ctx, "lake", 0, mode, nil)
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", mode, err)
		}
		if len(out.Results) != 0 {
			t.Errorf("mode %s: expected empty results for k=0, got %d", mode, len(out.Results))
		}
	}
}

func TestRetrievalService_EmbeddingModeWithoutProviderFallsBack(t *testing.T) {
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, nil)
	seedCorpus(t, svc)

	out, err := svc.Search(context.Background(), "burabay lake", 5, domain.SearchModeEmbedding, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.FallbackUsed {
		t.Error("expected fallback flag without provider")
	}
	// The reported mode is the requested one; only the flag signals
	// degradation.
	if out.Mode != domain.SearchModeEmbedding {
		t.Errorf("expected mode embedding, got %s", out.Mode)
	}

	tfidfOut, _ := svc.Search(context.Background(), "burabay lake", 5, domain.SearchModeTFIDF, nil)
	if len(out.Results) != len(tfidfOut.Results) {
		t.Errorf("expected identical result count to tfidf, got %d vs %d", len(out.Results), len(tfidfOut.Results))
	}
	for i := range out.Results {
		if out.Results[i].ID != tfidfOut.Results[i].ID || out.Results[i].Score != tfidfOut.Results[i].Score {
			t.Errorf("result %d differs from tfidf: %+v vs %+v", i, out.Results[i], tfidfOut.Results[i])
		}
	}
}

func TestRetrievalService_EmbeddingModeWithProvider(t *testing.T) {
	provider := mocks.NewMockEmbeddingProvider()
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, provider)
	seedCorpus(t, svc)

	out, err := svc.Search(context.Background(), "burabay lakes pine", 5, domain.SearchModeEmbedding, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FallbackUsed {
		t.Error("unexpected fallback with working provider")
	}
	if len(out.Results) == 0 {
		t.Fatal("expected results")
	}
}

func TestRetrievalService_PGVectorSilentlyReducesWithoutStore(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.DefaultBackend = domain.BackendPGVector
	_, svc := newTestEngine(cfg, nil, nil)

	if svc.Backend() != domain.BackendFiles {
		t.Errorf("expected reduction to files backend, got %s", svc.Backend())
	}
	// With the reduced backend, sessions are not required.
	sess, err := svc.NewSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Error("expected nil session for files backend")
	}
	if _, err := svc.Ingest(context.Background(), domain.IngestRequest{Title: "T", Text: "text"}, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRetrievalService_PGVectorIngestRequiresSession(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.DefaultBackend = domain.BackendPGVector
	vectors := mocks.NewMockVectorStore()
	_, svc := newTestEngine(cfg, vectors, nil)

	_, err := svc.Ingest(context.Background(), domain.IngestRequest{Title: "T", Text: "text"}, nil)
	if !errors.Is(err, domain.ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
	if vectors.Len() != 0 {
		t.Error("expected no writes without a session")
	}
}

func TestRetrievalService_PGVectorIngestAndSearch(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.DefaultBackend = domain.BackendPGVector
	vectors := mocks.NewMockVectorStore()
	_, svc := newTestEngine(cfg, vectors, nil)
	ctx := context.Background()

	sess, err := svc.NewSession(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session for pgvector backend")
	}

	if _, err := svc.Ingest(ctx, domain.IngestRequest{Title: "Burabay", Text: "Lakes and pine forests"}, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	readSess, _ := svc.NewSession(ctx)
	out, err := svc.Search(ctx, "burabay", 5, domain.SearchModeLexical, readSess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FallbackUsed {
		t.Error("unexpected fallback")
	}
	if len(out.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out.Results))
	}
}

func TestRetrievalService_PGVectorBackfillsComputedEmbeddings(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.DefaultBackend = domain.BackendPGVector
	cfg.DefaultMode = domain.SearchModeTFIDF // ingest stores no vector
	vectors := mocks.NewMockVectorStore()
	provider := mocks.NewMockEmbeddingProvider()
	_, svc := newTestEngine(cfg, vectors, provider)
	ctx := context.Background()

	sess, _ := svc.NewSession(ctx)
	items := []domain.IngestRequest{
		{Title: "Burabay", Text: "Lakes and pine forests"},
		{Title: "Kokshetau", Text: "Regional center with a museum"},
	}
	if _, err := svc.IngestBatch(ctx, items, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First embedding search computes the query plus both document vectors.
	readSess, _ := svc.NewSession(ctx)
	if _, err := svc.Search(ctx, "burabay lakes", 5, domain.SearchModeEmbedding, readSess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := provider.EmbedCalls(); got != 3 {
		t.Fatalf("expected 3 embed calls on first search, got %d", got)
	}

	// The computed vectors were written back through the session; the next
	// search only embeds the query.
	readSess, _ = svc.NewSession(ctx)
	if _, err := svc.Search(ctx, "burabay lakes", 5, domain.SearchModeEmbedding, readSess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := provider.EmbedCalls(); got != 4 {
		t.Errorf("expected 4 embed calls after second search, got %d", got)
	}
}

func TestRetrievalService_PGVectorSearchFailureFallsBackToFiles(t *testing.T) {
	cfg := DefaultRetrievalConfig()
	cfg.DefaultBackend = domain.BackendPGVector
	vectors := mocks.NewMockVectorStore()
	docs, svc := newTestEngine(cfg, vectors, nil)
	ctx := context.Background()

	// Seed the file store directly; it serves as the fallback corpus.
	doc := domain.NewDocument("Burabay", "Lakes and pine forests", "EN", nil)
	if _, err := docs.Add(ctx, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vectors.SetFailList(true)
	sess, _ := svc.NewSession(ctx)
	out, err := svc.Search(ctx, "burabay", 5, domain.SearchModeLexical, sess)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if !out.FallbackUsed {
		t.Error("expected fallback flag after vector store failure")
	}
	if len(out.Results) != 1 {
		t.Errorf("expected 1 result from file fallback, got %d", len(out.Results))
	}
}

func TestRetrievalService_GetContext(t *testing.T) {
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, nil)
	seedCorpus(t, svc)

	blob, err := svc.GetContext(context.Background(), "lake resort", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob == "" {
		t.Fatal("expected non-empty context")
	}
	// Each line is "title: snippet".
	for _, line := range strings.Split(blob, "\n") {
		if !strings.Contains(line, ": ") {
			t.Errorf("malformed context line: %q", line)
		}
	}
}

func TestRetrievalService_GetContextEmptyWhenNoMatch(t *testing.T) {
	_, svc := newTestEngine(DefaultRetrievalConfig(), nil, nil)
	seedCorpus(t, svc)

	blob, err := svc.GetContext(context.Background(), "volcano eruption", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob != "" {
		t.Errorf("expected empty context, got %q", blob)
	}
}
