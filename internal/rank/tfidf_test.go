package rank

import (
	"testing"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

func TestTFIDFScorer_RanksRelevantFirst(t *testing.T) {
	scorer := NewTFIDFScorer()
	docs := testCorpus()

	results := scorer.Score("burabay pine forests", docs, 10)
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Title != "Burabay National Park" {
		t.Errorf("expected Burabay doc first, got %s", results[0].Title)
	}
}

func TestTFIDFScorer_ScoresInUnitRange(t *testing.T) {
	scorer := NewTFIDFScorer()
	results := scorer.Score("lake resort", testCorpus(), 10)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for _, r := range results {
		if r.Score <= 0 || r.Score > 1 {
			t.Errorf("expected score in (0,1], got %v for %s", r.Score, r.Title)
		}
	}
}

func TestTFIDFScorer_ScoresNotIntegers(t *testing.T) {
	scorer := NewTFIDFScorer()
	results := scorer.Score("lake", testCorpus(), 10)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	// Cosine over partial overlap cannot hit exactly 1.0 here.
	for _, r := range results {
		if r.Score == 1.0 {
			t.Errorf("unexpected perfect score for partial match %s", r.Title)
		}
	}
}

func TestTFIDFScorer_RoundsToFourDecimals(t *testing.T) {
	scorer := NewTFIDFScorer()
	results := scorer.Score("lake pine", testCorpus(), 10)
	for _, r := range results {
		rounded := roundScore(r.Score)
		if r.Score != rounded {
			t.Errorf("score %v not rounded to 4 decimals", r.Score)
		}
	}
}

func TestTFIDFScorer_QueryOnlyTermsDoNotMatch(t *testing.T) {
	scorer := NewTFIDFScorer()
	// No corpus document contains any of these terms.
	results := scorer.Score("xyzzy quux", testCorpus(), 10)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestTFIDFScorer_EdgeCases(t *testing.T) {
	scorer := NewTFIDFScorer()
	docs := testCorpus()

	if got := scorer.Score("", docs, 5); len(got) != 0 {
		t.Errorf("empty query: expected 0 results, got %d", len(got))
	}
	if got := scorer.Score("lake", docs, 0); len(got) != 0 {
		t.Errorf("k=0: expected 0 results, got %d", len(got))
	}
	if got := scorer.Score("lake", nil, 5); len(got) != 0 {
		t.Errorf("empty corpus: expected 0 results, got %d", len(got))
	}
}

func TestTFIDFScorer_IdenticalDocScoresHigh(t *testing.T) {
	docs := []*domain.Document{
		domain.NewDocument("Exact", "burabay lakes", "EN", nil),
		domain.NewDocument("Noise", "steppe horses and eagles far away", "EN", nil),
	}
	scorer := NewTFIDFScorer()

	results := scorer.Score("burabay lakes", docs, 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// Title tokens dilute the document vector, so the score is high but
	// not 1.0.
	if results[0].Score < 0.7 {
		t.Errorf("expected high score for matching text, got %v", results[0].Score)
	}
}
