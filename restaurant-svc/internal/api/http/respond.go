package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-backend/restaurant-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps a service error onto a status code. Unclassified errors are
// logged and reported as a server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		log.WithFields(log.Fields{
			"method": r.Method,
			"url":    r.URL.String(),
		}).WithError(err).Error("request failed")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, domainErr.Message)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidTransition):
		writeMessage(w, http.StatusBadRequest, domainErr.Message)
	case errors.Is(err, domain.ErrAuthFailed):
		writeMessage(w, http.StatusUnauthorized, domainErr.Message)
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, domainErr.Message)
	default:
		writeMessage(w, http.StatusInternalServerError, domainErr.Message)
	}
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes the
// 400 response itself and reports whether the caller may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !decodeJSON(w, r, dst) {
		return false
	}
	if err := validateStruct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
