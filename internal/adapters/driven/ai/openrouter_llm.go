package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

var _ driven.ChatModel = (*OpenRouterChat)(nil)

const systemPrompt = "You are a helpful travel assistant for the Aqmola region of Kazakhstan. " +
	"Answer questions about attractions, hotels, routes and local culture. " +
	"Keep answers short and practical. Reply in the user's language."

// Canned replies used when no API key is configured or the upstream call
// fails. Keyed by lowercase substrings of the prompt.
var stubReplies = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"burabay", "боровое", "бурабай"},
		reply: "Burabay (Borovoe) is the best-known resort area in Aqmola: lakes, pine forests " +
			"and the Okzhetpes and Zhumbaktas rock formations. Plan at least a full day; " +
			"boat rentals and hiking trails start near the village of Burabay.",
	},
	{
		keywords: []string{"kokshetau", "көкшетау", "кокшетау"},
		reply: "Kokshetau is the administrative center of the region and the usual gateway " +
			"to Burabay. The city has a lakeside promenade, a regional history museum " +
			"and direct rail links to Astana.",
	},
	{
		keywords: []string{"hotel", "отель", "stay", "гостиница"},
		reply: "Most visitors stay either in Kokshetau or directly in the Burabay resort zone. " +
			"Resort hotels fill up quickly in July and August, book two or three weeks ahead.",
	},
	{
		keywords: []string{"route", "маршрут", "itinerary"},
		reply: "A classic two-day route: day one around Lake Borovoe with the Bolektau hill " +
			"viewpoint, day two at Lake Shchuchye and the healing springs. Both start from " +
			"the Burabay visitor center.",
	},
}

const defaultStubReply = "I can help with attractions, hotels and routes around the Aqmola region. " +
	"Ask me about Burabay, Kokshetau, Zerenda or anything else you plan to visit."

// OpenRouterChat answers free-form traveler questions through the OpenRouter
// chat completions API. Without an API key, or when the upstream call fails,
// it falls back to a small set of canned region answers so the assistant
// endpoint keeps working in degraded form.
type OpenRouterChat struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenRouterChat creates a chat model backed by OpenRouter. An empty
// apiKey is allowed; the model then serves stub replies only.
func NewOpenRouterChat(apiKey, model, baseURL string) *OpenRouterChat {
	if model == "" {
		model = "amazon/nova-2-lite-v1:free"
	}
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterChat{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the prompt upstream and returns the model's reply. Failures
// degrade to a canned reply instead of an error so callers never lose the
// assistant entirely.
func (c *OpenRouterChat) Chat(ctx context.Context, prompt, lang string) (string, error) {
	if c.apiKey == "" {
		return stubReply(prompt), nil
	}
	reply, err := c.complete(ctx, prompt, lang)
	if err != nil {
		return stubReply(prompt), nil
	}
	return reply, nil
}

func (c *OpenRouterChat) complete(ctx context.Context, prompt, lang string) (string, error) {
	system := systemPrompt
	if lang != "" {
		system += " Preferred reply language: " + lang + "."
	}
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("openrouter api error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter api returned status %d", resp.StatusCode)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func stubReply(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, s := range stubReplies {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.reply
			}
		}
	}
	return defaultStubReply
}
