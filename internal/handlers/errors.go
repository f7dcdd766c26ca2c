package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pdfchat/internal/chunker"
	"pdfchat/internal/llm"
	"pdfchat/internal/service"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeErrorDetails writes an error response with a detail string.
func writeErrorDetails(w http.ResponseWriter, statusCode int, message, details string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message, Details: details})
}

// statusForError maps pipeline errors to HTTP status codes. Client mistakes
// (bad format, bad chunking parameters) are 400, querying before any upload
// is 409, upstream model failures are 502, everything else is 500.
func statusForError(err error) int {
	var provErr *llm.ProviderError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, chunker.ErrBadConfig):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmptyCorpus):
		return http.StatusConflict
	case errors.As(err, &provErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
