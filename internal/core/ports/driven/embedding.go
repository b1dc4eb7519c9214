package driven

import (
	"context"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// EmbeddingProvider converts text to a fixed-length numeric vector.
// Failures are reported as tagged outcomes, not errors: the retrieval
// engine branches on the status to decide fallback, it never catches.
type EmbeddingProvider interface {
	// Embed produces a vector for the given text.
	Embed(ctx context.Context, text string) domain.EmbedResult

	// Dimensions returns the provider-defined vector length.
	Dimensions() int
}

// ChatModel generates a conversational reply. Implementations degrade to a
// canned answer internally rather than failing.
type ChatModel interface {
	Chat(ctx context.Context, prompt, lang string) (string, error)
}
