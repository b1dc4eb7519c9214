package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// handleListAttractions returns the catalog.
func (s *Server) handleListAttractions(w http.ResponseWriter, r *http.Request) {
	attractions, err := s.catalogService.ListAttractions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list attractions")
		return
	}
	writeJSON(w, http.StatusOK, attractions)
}

// handleCreateAttraction adds a catalog entry.
func (s *Server) handleCreateAttraction(w http.ResponseWriter, r *http.Request) {
	var a domain.Attraction
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.catalogService.CreateAttraction(r.Context(), &a)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create attraction")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

type createBookingRequest struct {
	AttractionID string `json:"attraction_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// handleCreateBooking reserves an attraction for the authenticated user.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := s.catalogService.CreateBooking(r.Context(), &domain.Booking{
		UserID:       authCtx.UserID,
		AttractionID: req.AttractionID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "attraction not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// handleListBookings returns the authenticated user's bookings.
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookings, err := s.catalogService.ListBookings(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

type updateStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// handleUpdateBookingStatus moves a booking through its lifecycle.
func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.catalogService.UpdateBookingStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "unknown booking status")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type createReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// handleCreateReview stores feedback for an attraction.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	attractionID := r.PathValue("id")
	if attractionID == "" {
		writeError(w, http.StatusBadRequest, "attraction id is required")
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := s.catalogService.CreateReview(r.Context(), &domain.Review{
		UserID:       authCtx.UserID,
		AttractionID: attractionID,
		Rating:       req.Rating,
		Text:         req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "attraction not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create review")
		}
		return
	}

	writeJSON(w, http.StatusCreated, review)
}
