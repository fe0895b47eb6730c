package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/services"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps core errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found", nil)
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "catalog item not found", err)
	case errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "booking not found", nil)
	case errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrKindMismatch):
		writeError(w, http.StatusBadRequest, "invalid catalog request", err)
	case errors.Is(err, services.ErrNotConfirmed):
		writeError(w, http.StatusConflict, "delete not confirmed, retry with ?confirm=true", nil)
	case errors.Is(err, domain.ErrDuplicateBooking):
		writeError(w, http.StatusConflict, "booking already recorded", err)
	default:
		log.Printf("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
