// Package httpx maps the service error taxonomy onto HTTP responses. Every
// failure path in a handler ends in WriteError so that nothing is silently
// swallowed and every response carries the same envelope.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION"
	CodeConflict      Code = "CONFLICT"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeUpstreamText  Code = "UPSTREAM_TEXT_ERROR"
	CodeUpstreamImage Code = "UPSTREAM_IMAGE_ERROR"
	CodeUnavailable   Code = "PROVIDER_UNAVAILABLE"
	CodeConfiguration Code = "CONFIGURATION_ERROR"
	CodeInternal      Code = "INTERNAL"
)

// Status returns the HTTP status the code maps to.
func (c Code) Status() int {
	switch c {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type (
	// Error carries a taxonomy code alongside a caller-facing message and an
	// optional wrapped cause.
	Error struct {
		Code    Code
		Message string
		Err     error
	}

	// ErrorResponse is the JSON envelope for all failures. Details carries
	// the underlying cause and is only populated outside production.
	ErrorResponse struct {
		Error   string `json:"error"`
		Code    Code   `json:"code"`
		Details string `json:"details,omitempty"`
	}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a taxonomy error with no underlying cause.
func E(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a taxonomy error around an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode response")
	}
}

// WriteError maps err to the envelope. Errors outside the taxonomy become
// INTERNAL. includeDetails exposes the wrapped cause and is off in prod.
func WriteError(w http.ResponseWriter, r *http.Request, err error, includeDetails bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Wrap(CodeInternal, "internal server error", err)
	}

	resp := ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	}
	if includeDetails && apiErr.Err != nil {
		resp.Details = apiErr.Err.Error()
	}

	WriteJSON(w, r, apiErr.Code.Status(), resp)
}
