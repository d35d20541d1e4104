package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/solarops/soltrack/internal/service"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional
// "fields" for field-level details. status is typically 400.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// writeWorkflowError maps mutation workflow errors to HTTP status codes.
// Anything unrecognized is a persistence failure and gets the generic 500.
func writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateSerial):
		JSONError(w, service.ErrDuplicateSerial.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrAssetNotFound):
		JSONError(w, service.ErrAssetNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrSerialRequired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDate):
		JSONError(w, err.Error(), http.StatusBadRequest)
	default:
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
