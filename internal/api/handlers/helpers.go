package handlers

import (
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "encode failed", err,
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps domain and service errors onto HTTP statuses.
// Unexpected errors are logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTrip):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLocationNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrTripNotFound):
		writeError(w, r, http.StatusNotFound, "trip not found")
	default:
		logging.LogError(logging.FromContext(r.Context()), op+" failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
