// Package httputil centralizes JSON response emission. The error path here
// is the only place a failure is rendered to a client, so the uniform
// envelope and detail-stripping live in exactly one function.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "gateway/pkg/domain-errors"
)

// WriteJSON emits v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders any error as the uniform `{"message": ...}` envelope.
// Normalized errors keep their status and client-safe message; anything else
// collapses to a generic 500 so stack traces and internal addresses never
// reach a client. Oversized-body failures surface as 413.
func WriteError(w http.ResponseWriter, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		WriteJSON(w, http.StatusRequestEntityTooLarge,
			map[string]string{"message": "Request payload is too large"})
		return
	}

	message := "Something went wrong, please try again"
	if e, ok := dErrors.As(err); ok && e.Message != "" {
		message = e.Message
	}
	WriteJSON(w, dErrors.HTTPStatus(err), map[string]string{"message": message})
}
