package services

import (
	"context"
	"log/slog"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driving"
)

// Ensure assistantService implements AssistantService
var _ driving.AssistantService = (*assistantService)(nil)

// assistantService answers traveler questions, optionally grounding the
// prompt in retrieved documents.
type assistantService struct {
	chat      driven.ChatModel
	retrieval driving.RetrievalService
	useRAG    bool
	logger    *slog.Logger
}

// NewAssistantService creates a new AssistantService. When retrieval is nil
// or useRAG is false, prompts go to the model without retrieved context.
func NewAssistantService(
	chat driven.ChatModel,
	retrieval driving.RetrievalService,
	useRAG bool,
	logger *slog.Logger,
) driving.AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &assistantService{
		chat:      chat,
		retrieval: retrieval,
		useRAG:    useRAG && retrieval != nil,
		logger:    logger,
	}
}

// Ask answers a free-form question. Retrieval problems downgrade to an
// ungrounded prompt, they never fail the request.
func (s *assistantService) Ask(ctx context.Context, prompt, lang string) (string, error) {
	if prompt == "" {
		return "", domain.ErrInvalidInput
	}

	grounded := prompt
	if s.useRAG {
		ragCtx, err := s.retrieval.GetContext(ctx, prompt, nil)
		if err != nil {
			s.logger.Warn("context retrieval failed, answering ungrounded", "error", err)
		} else if ragCtx != "" {
			grounded = "Relevant local information:\n" + ragCtx + "\n\nQuestion: " + prompt
		}
	}

	return s.chat.Chat(ctx, grounded, lang)
}
