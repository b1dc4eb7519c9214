package rank

import (
	"math"
	"testing"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"both empty", nil, nil, 0.0},
		{"one empty", []float64{1, 2}, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosine_MismatchedLengths(t *testing.T) {
	// Dot product runs over the shorter prefix; norms cover full vectors.
	a := []float64{1, 0, 0}
	b := []float64{1, 0}
	got := Cosine(a, b)
	if math.Abs(got-1.0) > 1e-6 {
		t.Errorf("expected ~1.0 over overlapping prefix, got %v", got)
	}

	c := []float64{1, 0}
	d := []float64{1, 0, 5}
	got = Cosine(c, d)
	// The trailing component inflates d's norm, so similarity drops.
	if got >= 1.0 || got <= 0 {
		t.Errorf("expected similarity in (0,1), got %v", got)
	}
}

func TestCosine_ZeroVectorNoPanic(t *testing.T) {
	got := Cosine([]float64{0, 0, 0}, []float64{0, 0, 0})
	if got != 0 {
		t.Errorf("expected 0 for zero vectors, got %v", got)
	}
}

func TestRankResults(t *testing.T) {
	results := []domain.SearchResult{
		{ID: "a", Score: 0.2},
		{ID: "b", Score: 0.9},
		{ID: "c", Score: 0.9},
		{ID: "d", Score: 0.5},
	}

	ranked := rankResults(results, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	// b and c tie; b was enumerated first.
	if ranked[0].ID != "b" || ranked[1].ID != "c" || ranked[2].ID != "d" {
		t.Errorf("unexpected order: %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
}

func TestRoundScore(t *testing.T) {
	if got := roundScore(0.123456); got != 0.1235 {
		t.Errorf("roundScore(0.123456) = %v, want 0.1235", got)
	}
	if got := roundScore(1.0); got != 1.0 {
		t.Errorf("roundScore(1.0) = %v, want 1.0", got)
	}
}
