package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"backoffice/internal/core"
)

type errorResponse struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Fields    map[string][]string `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleError maps core error types onto HTTP statuses and stable codes.
// Adapters never match on message text; the type carries the meaning.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid core.ValidationErrors
	if errors.As(err, &invalid) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Error:     invalid.Error(),
			Code:      "VALIDATION_FAILED",
			Fields:    invalid,
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}

	var notFound *core.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, r, notFound.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}

	var conflict *core.ConflictError
	if errors.As(err, &conflict) {
		writeError(w, r, conflict.Error(), "CONFLICT", http.StatusConflict)
		return
	}

	var rule *core.RuleError
	if errors.As(err, &rule) {
		writeError(w, r, rule.Error(), "RULE_VIOLATION", http.StatusUnprocessableEntity)
		return
	}

	writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body into v; a false return means the error
// response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
