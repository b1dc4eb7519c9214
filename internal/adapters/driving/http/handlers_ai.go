package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

type askRequest struct {
	Prompt string `json:"prompt"`
	Lang   string `json:"lang,omitempty"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// handleAssistantAsk answers a traveler question.
func (s *Server) handleAssistantAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.assistantService.Ask(r.Context(), req.Prompt, req.Lang)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "prompt is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "assistant unavailable")
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}
