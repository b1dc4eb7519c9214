package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// SnippetLength is the number of characters of body text returned with a search result.
const SnippetLength = 200

// Document is a stored unit of retrievable text.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Lang      string    `json:"lang,omitempty"` // normalized upper-case, informational only
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentID derives the stable document identifier from title and text.
// Identical (title, text) pairs always yield the same id, which makes
// ingestion idempotent.
func DocumentID(title, text string) string {
	sum := sha1.Sum([]byte(title + "\n" + text))
	return hex.EncodeToString(sum[:])[:16]
}

// NewDocument builds a Document with a derived id and normalized language tag.
func NewDocument(title, text, lang string, tags []string) *Document {
	if tags == nil {
		tags = []string{}
	}
	return &Document{
		ID:        DocumentID(title, text),
		Title:     title,
		Text:      text,
		Lang:      strings.ToUpper(lang),
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}
}

// TextLength counts characters, not bytes, so the size cap treats
// multi-byte scripts the same as ASCII.
func (d *Document) TextLength() int {
	return utf8.RuneCountInString(d.Text)
}

// Snippet returns the display prefix of the document body.
func (d *Document) Snippet() string {
	return Snippet(d.Text)
}

// Snippet truncates text to SnippetLength characters.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= SnippetLength {
		return text
	}
	return string(runes[:SnippetLength])
}

// SearchMode determines the scoring strategy used for a search.
type SearchMode string

const (
	SearchModeLexical   SearchMode = "lexical"   // token-overlap count
	SearchModeTFIDF     SearchMode = "tfidf"     // TF-IDF cosine
	SearchModeEmbedding SearchMode = "embedding" // embedding cosine, degrades to tfidf
)

// ParseSearchMode normalizes a mode string. Unknown values coerce to lexical
// rather than erroring, so a bad query parameter never breaks search.
func ParseSearchMode(s string) SearchMode {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case SearchModeTFIDF:
		return SearchModeTFIDF
	case SearchModeEmbedding:
		return SearchModeEmbedding
	default:
		return SearchModeLexical
	}
}

// RAGBackend selects the storage substrate for the retrieval engine.
type RAGBackend string

const (
	BackendFiles    RAGBackend = "files"    // JSON documents on local disk
	BackendPGVector RAGBackend = "pgvector" // vector-capable PostgreSQL table
)

// ParseRAGBackend normalizes a backend string, defaulting to files.
func ParseRAGBackend(s string) RAGBackend {
	if RAGBackend(strings.ToLower(strings.TrimSpace(s))) == BackendPGVector {
		return BackendPGVector
	}
	return BackendFiles
}

// SearchResult is a single ranked hit. Score semantics depend on mode:
// lexical scores are whole shared-token counts, tfidf and embedding scores
// are cosine-derived values in [0,1].
type SearchResult struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

// SearchOutput is the full response of one search call.
type SearchOutput struct {
	Query        string         `json:"query"`
	Mode         SearchMode     `json:"mode_used"`
	FallbackUsed bool           `json:"fallback_used"`
	Results      []SearchResult `json:"results"`
}

// IngestRequest is one document submitted for ingestion.
type IngestRequest struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Lang  string   `json:"lang,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// IngestReceipt acknowledges a single ingested document.
type IngestReceipt struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BatchReceipt tallies a batch ingestion. Items succeed or fail
// independently; a failed item is counted and excluded from IDs.
type BatchReceipt struct {
	OK   int      `json:"ok"`
	Fail int      `json:"fail"`
	IDs  []string `json:"ids"`
}

// ErrDocumentTooLarge builds the validation error for an oversized document.
func ErrDocumentTooLarge(title string, length, limit int) error {
	return fmt.Errorf("%w: %q is %d chars, limit %d", ErrDocTooLarge, title, length, limit)
}
