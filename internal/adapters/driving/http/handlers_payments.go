package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
)

// paySignatureHeader carries the provider's HMAC-SHA256 of the raw body.
const paySignatureHeader = "X-Pay-Sig"

// handlePaymentWebhook receives payment provider callbacks. The signature is
// checked over the raw body before any parsing.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if !verifySignature(s.paymentSecret, body, r.Header.Get(paySignatureHeader)) {
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var n domain.PaymentNotification
	if err := json.Unmarshal(body, &n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := s.catalogService.ApplyPayment(r.Context(), n)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "unknown payment order")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "order_id is required")
		default:
			writeError(w, http.StatusInternalServerError, "payment processing failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "accepted",
		"booking_id": booking.ID,
	})
}

// verifySignature compares the hex HMAC-SHA256 of body in constant time.
func verifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
