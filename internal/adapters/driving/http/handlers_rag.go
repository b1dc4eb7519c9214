package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

const defaultSearchK = 3

// withSession runs fn inside a retrieval session. For the file backend the
// session is nil and commit/rollback are no-ops.
func (s *Server) withSession(r *http.Request, fn func(sess driven.RAGSession) error) error {
	sess, err := s.retrievalService.NewSession(r.Context())
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		if sess != nil {
			_ = sess.Rollback()
		}
		return err
	}
	if sess != nil {
		return sess.Commit()
	}
	return nil
}

// handleRAGIngest stores one document.
func (s *Server) handleRAGIngest(w http.ResponseWriter, r *http.Request) {
	var req domain.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var receipt *domain.IngestReceipt
	err := s.withSession(r, func(sess driven.RAGSession) error {
		var err error
		receipt, err = s.retrievalService.Ingest(r.Context(), req, sess)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrDocTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

// handleRAGIngestBatch stores several documents; items fail independently.
func (s *Server) handleRAGIngestBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []domain.IngestRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var receipt *domain.BatchReceipt
	err := s.withSession(r, func(sess driven.RAGSession) error {
		var err error
		receipt, err = s.retrievalService.IngestBatch(r.Context(), req.Items, sess)
		return err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "batch ingestion failed")
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// handleRAGSearch ranks stored documents against ?q with optional ?k and
// ?mode parameters.
func (s *Server) handleRAGSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	k := defaultSearchK
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "k must be an integer")
			return
		}
		k = parsed
	}

	// An absent mode parameter defers to the engine's configured default;
	// only an explicit value is coerced.
	var mode domain.SearchMode
	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode = domain.ParseSearchMode(raw)
	}

	var out *domain.SearchOutput
	err := s.withSession(r, func(sess driven.RAGSession) error {
		var err error
		out, err = s.retrievalService.Search(r.Context(), query, k, mode, sess)
		return err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// handleRAGContext returns the assembled context blob for ?q.
func (s *Server) handleRAGContext(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	var blob string
	err := s.withSession(r, func(sess driven.RAGSession) error {
		var err error
		blob, err = s.retrievalService.GetContext(r.Context(), query, sess)
		return err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "context retrieval failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"query": query, "context": blob})
}

// handleRAGIndexAttractions folds the attraction catalog into the retrieval
// corpus so search and the assistant can ground answers in it.
func (s *Server) handleRAGIndexAttractions(w http.ResponseWriter, r *http.Request) {
	attractions, err := s.catalogService.ListAttractions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list attractions")
		return
	}

	items := make([]domain.IngestRequest, 0, len(attractions))
	for _, a := range attractions {
		text := a.Description
		if a.Lat != 0 || a.Lon != 0 {
			text = fmt.Sprintf("%s\nLocation: %.5f, %.5f", text, a.Lat, a.Lon)
		}
		items = append(items, domain.IngestRequest{
			Title: a.Name,
			Text:  text,
			Tags:  []string{"attraction"},
		})
	}

	var receipt *domain.BatchReceipt
	err = s.withSession(r, func(sess driven.RAGSession) error {
		var err error
		receipt, err = s.retrievalService.IngestBatch(r.Context(), items, sess)
		return err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "indexing failed")
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}
