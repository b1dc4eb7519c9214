package mocks

import (
	"context"
	"sync"

	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Ensure MockChatModel implements ChatModel
var _ driven.ChatModel = (*MockChatModel)(nil)

// MockChatModel records prompts and returns a fixed reply
type MockChatModel struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Prompts []string
}

// NewMockChatModel creates a new MockChatModel
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{Reply: "mock reply"}
}

func (m *MockChatModel) Chat(ctx context.Context, prompt, lang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// LastPrompt returns the most recent prompt, or empty when none.
func (m *MockChatModel) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
