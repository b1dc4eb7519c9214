// Package ai holds adapters for external AI capabilities: the embedding
// provider and the conversational model. Both are optional collaborators;
// their absence degrades features instead of breaking them.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Ensure OpenAIEmbedding implements EmbeddingProvider
var _ driven.EmbeddingProvider = (*OpenAIEmbedding)(nil)

// Model dimensions for OpenAI embedding models
var openAIModelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedding converts text to vectors through OpenAI's embedding API.
// Every failure mode (network error, non-200 status, malformed body) is
// reported as a tagged transient outcome; a missing key never reaches this
// type, the factory returns no provider at all in that case.
type OpenAIEmbedding struct {
	apiKey     string
	model      string
	baseURL    string
	dimensions int
	client     *http.Client
}

// NewOpenAIEmbedding creates a new OpenAI embedding provider. Returns nil
// when apiKey is empty; callers treat a nil provider as "unavailable".
func NewOpenAIEmbedding(apiKey, model, baseURL string) *OpenAIEmbedding {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	dimensions, ok := openAIModelDimensions[model]
	if !ok {
		dimensions = 1536
	}
	return &OpenAIEmbedding{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// embeddingRequest is the request body for OpenAI embedding API
type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

// embeddingResponse is the response from OpenAI embedding API
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Embed produces a vector for the given text.
func (e *OpenAIEmbedding) Embed(ctx context.Context, text string) domain.EmbedResult {
	body, err := json.Marshal(embeddingRequest{Input: text, Model: e.model})
	if err != nil {
		return domain.EmbedFailed(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return domain.EmbedFailed(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return domain.EmbedFailed(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.EmbedFailed(fmt.Errorf("read response: %w", err))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return domain.EmbedFailed(fmt.Errorf("parse response: %w", err))
	}
	if embResp.Error != nil {
		return domain.EmbedFailed(fmt.Errorf("openai api error: %s (type: %s)", embResp.Error.Message, embResp.Error.Type))
	}
	if resp.StatusCode != http.StatusOK {
		return domain.EmbedFailed(fmt.Errorf("openai api returned status %d", resp.StatusCode))
	}
	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return domain.EmbedFailed(fmt.Errorf("no embedding in response"))
	}

	return domain.EmbedVector(embResp.Data[0].Embedding)
}

// Dimensions returns the embedding dimension size
func (e *OpenAIEmbedding) Dimensions() int {
	return e.dimensions
}
