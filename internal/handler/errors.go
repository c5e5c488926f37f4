package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
)

// errorEnvelope is the shape every non-2xx response uses. Errors holds
// per-field validation messages when present.
type errorEnvelope struct {
	StatusCode int               `json:"statusCode"`
	Timestamp  string            `json:"timestamp"`
	Path       string            `json:"path"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorEnvelope{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Message:    message,
	})
}

func respondValidation(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{
		StatusCode: http.StatusBadRequest,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Message:    "Validation failed",
		Errors:     fieldErrors,
	})
}

// respondServiceError maps service and repository sentinels to HTTP
// statuses. Anything unrecognized is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "Resource not found")
	case repository.IsDuplicate(err):
		respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInvalidID):
		respondError(w, r, http.StatusBadRequest, "Invalid id format")
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrNoItems):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrAccountLocked):
		respondError(w, r, http.StatusLocked, "Account is temporarily locked, try again later")
	case errors.Is(err, service.ErrInvalidResetToken):
		respondError(w, r, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, service.ErrInvalidRefresh):
		respondError(w, r, http.StatusUnauthorized, "Invalid refresh token")
	default:
		log.Errorf("unhandled error on %s %s: %v", r.Method, r.URL.Path, err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
