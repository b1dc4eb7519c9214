package domain

import (
	"strings"
	"testing"
)

func TestDocumentID_Stable(t *testing.T) {
	a := DocumentID("Burabay", "Lakes and forests")
	b := DocumentID("Burabay", "Lakes and forests")
	if a != b {
		t.Errorf("expected stable id, got %s and %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("expected 16-char id, got %d chars", len(a))
	}
}

func TestDocumentID_SensitiveToBoth(t *testing.T) {
	base := DocumentID("Burabay", "Lakes")
	if DocumentID("Burabay", "Forests") == base {
		t.Error("expected different text to change the id")
	}
	if DocumentID("Kokshetau", "Lakes") == base {
		t.Error("expected different title to change the id")
	}
	// The separator prevents boundary ambiguity between title and text.
	if DocumentID("Buraba", "yLakes") == base {
		t.Error("expected title/text boundary to matter")
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("Burabay", "Lakes", "ru", nil)
	if doc.ID != DocumentID("Burabay", "Lakes") {
		t.Error("expected derived id")
	}
	if doc.Lang != "RU" {
		t.Errorf("expected normalized lang RU, got %s", doc.Lang)
	}
	if doc.Tags == nil {
		t.Error("expected non-nil tags")
	}
	if doc.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestSnippet(t *testing.T) {
	short := "short text"
	if got := Snippet(short); got != short {
		t.Errorf("expected short text unchanged, got %q", got)
	}

	long := strings.Repeat("a", SnippetLength+50)
	if got := Snippet(long); len([]rune(got)) != SnippetLength {
		t.Errorf("expected %d chars, got %d", SnippetLength, len([]rune(got)))
	}

	// Rune-based truncation must not split multi-byte characters.
	cyrillic := strings.Repeat("ж", SnippetLength+10)
	got := Snippet(cyrillic)
	if len([]rune(got)) != SnippetLength {
		t.Errorf("expected %d runes, got %d", SnippetLength, len([]rune(got)))
	}
	for _, r := range got {
		if r != 'ж' {
			t.Fatalf("snippet corrupted multi-byte text: %q", r)
		}
	}
}

func TestTextLength_CountsRunes(t *testing.T) {
	doc := &Document{Text: "Көкшетау"}
	if got := doc.TextLength(); got != 8 {
		t.Errorf("expected 8 runes, got %d", got)
	}
}

func TestParseSearchMode(t *testing.T) {
	tests := []struct {
		in   string
		want SearchMode
	}{
		{"lexical", SearchModeLexical},
		{"tfidf", SearchModeTFIDF},
		{"embedding", SearchModeEmbedding},
		{" TFIDF ", SearchModeTFIDF},
		{"", SearchModeLexical},
		{"bogus", SearchModeLexical},
	}
	for _, tt := range tests {
		if got := ParseSearchMode(tt.in); got != tt.want {
			t.Errorf("ParseSearchMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseRAGBackend(t *testing.T) {
	if got := ParseRAGBackend("pgvector"); got != BackendPGVector {
		t.Errorf("expected pgvector, got %s", got)
	}
	for _, in := range []string{"files", "", "bogus"} {
		if got := ParseRAGBackend(in); got != BackendFiles {
			t.Errorf("ParseRAGBackend(%q) = %s, want files", in, got)
		}
	}
}
