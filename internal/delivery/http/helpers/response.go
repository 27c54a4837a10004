package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"neurobiomark/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeCaptchaFailed = "captcha_failed"
	ErrCodeNotFound      = "not_found"
	ErrCodeRateLimited   = "rate_limited"
	ErrCodeInternalError = "internal_error"
	ErrCodeUnavailable   = "unavailable"
)

// ServerErrorMessage is the only message a client sees for unexpected failures.
const ServerErrorMessage = "Server error"

// ErrorResponse is the body of every error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// SuccessResponse is the body of mutations that return no document.
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes {"success":true} with statusCode.
func WriteSuccess(w http.ResponseWriter, statusCode int) {
	WriteJSON(w, statusCode, SuccessResponse{Success: true})
}

// WriteJSONError writes an ErrorResponse with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// ErrorStatus maps a domain error to its HTTP status, error code and client message.
// notFound is the message used for domain.ErrNotFound. Unknown errors map to 500
// with a generic message; callers log the original.
func ErrorStatus(err error, notFound string) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest, detail(err, domain.ErrInvalidInput, "Invalid input")
	case errors.Is(err, domain.ErrCaptchaFailed):
		return http.StatusForbidden, ErrCodeCaptchaFailed, "Captcha failed"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrCodeRateLimited, "Already requested recently"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, notFound
	}
	return http.StatusInternalServerError, ErrCodeInternalError, ServerErrorMessage
}

// detail returns the text a service wrapped around sentinel, or fallback when
// the error carries no extra text.
func detail(err, sentinel error, fallback string) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return fallback
}
