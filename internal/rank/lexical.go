package rank

import (
	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// LexicalScorer ranks documents by the number of tokens shared with the
// query. Scores are whole counts; there is no normalization by document
// length, so a long document sharing many tokens by chance can outscore a
// precise short match. Accepted limitation, kept for score-shape stability.
type LexicalScorer struct{}

// NewLexicalScorer creates a LexicalScorer.
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score ranks docs against query by shared-token count.
func (s *LexicalScorer) Score(query string, docs []*domain.Document, k int) []domain.SearchResult {
	results := []domain.SearchResult{}
	if query == "" || k <= 0 || len(docs) == 0 {
		return results
	}

	qSet := tokenSet(query)
	if len(qSet) == 0 {
		return results
	}

	for _, doc := range docs {
		dSet := tokenSet(doc.Title + "\n" + doc.Text)
		shared := 0
		for t := range qSet {
			if _, ok := dSet[t]; ok {
				shared++
			}
		}
		if shared > 0 {
			results = append(results, domain.SearchResult{
				ID:      doc.ID,
				Title:   doc.Title,
				Score:   float64(shared),
				Snippet: doc.Snippet(),
			})
		}
	}

	return rankResults(results, k)
}
