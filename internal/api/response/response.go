// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses, rendered documents and standardized error responses.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/render"
)

var logger atomic.Pointer[logging.Logger]

func init() {
	logger.Store(logging.NewSilentLogger())
}

// SetLogger sets the logger used to report write failures.
func SetLogger(l *logging.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Load().Warn().Err(err).Msg("failed to encode JSON response")
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, a map of field errors, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "resource not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// RespondDocument writes a rendered report inline, so browsers display it
// rather than download it.
func RespondDocument(w http.ResponseWriter, doc render.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		logger.Load().Warn().Err(err).Str("filename", doc.Filename).Msg("failed to write document response")
	}
}
