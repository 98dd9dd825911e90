package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"study-backend/internal/core/study"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// ValidationResponse carries the complete list of field-scoped violations
// for a rejected document.
type ValidationResponse struct {
	Error      string            `json:"error"`
	Code       int               `json:"code"`
	Violations []study.Violation `json:"violations"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteViolations writes a 422 carrying every violation found in the
// offending document.
func WriteViolations(w http.ResponseWriter, violations study.Violations) {
	response := ValidationResponse{
		Error:      http.StatusText(http.StatusUnprocessableEntity),
		Code:       http.StatusUnprocessableEntity,
		Violations: violations,
	}
	WriteJSON(w, http.StatusUnprocessableEntity, response)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteConflict writes a 409 Conflict response
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
