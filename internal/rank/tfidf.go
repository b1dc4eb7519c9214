package rank

import (
	"math"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// TFIDFScorer ranks documents by cosine similarity of TF-IDF vectors. The
// corpus statistics are recomputed from the full document set on every call;
// there is no persisted index, trading per-query cost for zero staleness.
type TFIDFScorer struct{}

// NewTFIDFScorer creates a TFIDFScorer.
func NewTFIDFScorer() *TFIDFScorer {
	return &TFIDFScorer{}
}

// Score ranks docs against query by TF-IDF cosine similarity.
func (s *TFIDFScorer) Score(query string, docs []*domain.Document, k int) []domain.SearchResult {
	results := []domain.SearchResult{}
	if query == "" || k <= 0 || len(docs) == 0 {
		return results
	}

	qTokens := Tokenize(query)
	if len(qTokens) == 0 {
		return results
	}

	corpusTokens := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		toks := Tokenize(doc.Title + " " + doc.Text)
		corpusTokens[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	qTF := termFrequency(qTokens)

	// Smoothed idf over the union of query and corpus vocabulary; terms
	// absent from the corpus get df 0.
	n := float64(len(docs))
	idf := make(map[string]float64, len(df)+len(qTF))
	for t, count := range df {
		idf[t] = math.Log((n+1)/float64(count+1)) + 1
	}
	for t := range qTF {
		if _, ok := idf[t]; !ok {
			idf[t] = math.Log(n+1) + 1
		}
	}

	for i, doc := range docs {
		dTF := termFrequency(corpusTokens[i])

		var num, denomQ, denomD float64
		for t := range union(qTF, dTF) {
			wq := qTF[t] * idf[t]
			wd := dTF[t] * idf[t]
			num += wq * wd
			denomQ += wq * wq
			denomD += wd * wd
		}

		score := roundScore(num / (math.Sqrt(denomQ)*math.Sqrt(denomD) + epsilon))
		if score > 0 {
			results = append(results, domain.SearchResult{
				ID:      doc.ID,
				Title:   doc.Title,
				Score:   score,
				Snippet: doc.Snippet(),
			})
		}
	}

	return rankResults(results, k)
}

// termFrequency computes counts normalized by total token count.
func termFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64)
	if len(tokens) == 0 {
		return tf
	}
	for _, t := range tokens {
		tf[t]++
	}
	total := float64(len(tokens))
	for t := range tf {
		tf[t] /= total
	}
	return tf
}

func union(a, b map[string]float64) map[string]struct{} {
	u := make(map[string]struct{}, len(a)+len(b))
	for t := range a {
		u[t] = struct{}{}
	}
	for t := range b {
		u[t] = struct{}{}
	}
	return u
}
