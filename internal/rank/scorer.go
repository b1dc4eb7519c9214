package rank

import (
	"math"
	"sort"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// epsilon guards cosine denominators against division by zero for empty
// vectors. Both storage backends must use this same value so results are
// backend-agnostic.
const epsilon = 1e-9

// rankResults sorts by score descending with a stable sort (ties keep the
// original enumeration order) and truncates to k.
func rankResults(results []domain.SearchResult, k int) []domain.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results
}

// roundScore trims cosine scores to 4 decimals for stable wire output.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}

// Cosine computes similarity between two vectors. The dot product runs over
// the overlapping prefix when lengths mismatch (defensive, providers return
// fixed-length vectors in practice); norms cover each full vector.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	var na, nb float64
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + epsilon)
}
