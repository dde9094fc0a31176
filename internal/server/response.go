// ABOUTME: JSON response and error helpers for the HTTP handlers.
// ABOUTME: Maps service errors onto HTTP status codes.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/hydration"
	"github.com/harperreed/hydration/internal/storage"
	"github.com/harperreed/hydration/internal/weather"

	log "github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to write json response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps a service error to its HTTP status.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s %s: %s", r.Method, r.URL.Path, err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	var upstream *weather.UpstreamError
	switch {
	case errors.Is(err, hydration.ErrMissingEmail),
		errors.Is(err, hydration.ErrInvalidVolume),
		errors.Is(err, daily.ErrMissingDate),
		errors.Is(err, daily.ErrDateMismatch):
		return http.StatusBadRequest
	case errors.Is(err, hydration.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrUserExists),
		errors.Is(err, hydration.ErrIntakeAlreadyRecorded):
		return http.StatusConflict
	case errors.Is(err, weather.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return false
	}
	return true
}
