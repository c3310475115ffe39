package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/muhammadolammi/icanmatch/internal/logging"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Meta struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body Response) {
	body.Meta = &Meta{
		RequestID: logging.RequestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC(),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusCreated, Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, Response{Error: &Error{Code: code, Message: message}})
}
