// Package rank implements the scoring strategies of the retrieval engine:
// lexical token overlap, TF-IDF cosine and embedding cosine. All scorers
// share the same contract: results ordered by non-increasing score, ties in
// original enumeration order, non-positive scores excluded, at most k items.
package rank

import "strings"

// Tokenize splits text into lowercase whitespace-delimited tokens. No
// stemming and no stop-word removal; the lexical and TF-IDF scorers are
// intentionally this naive.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// tokenSet builds the unique-token set of a text.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		set[t] = struct{}{}
	}
	return set
}
