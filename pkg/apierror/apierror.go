package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the wire-facing shape of a failure. Code is logged but never
// serialized to clients.
type APIError struct {
	Code       string `json:"-"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

// Wrap attaches the underlying cause so errors.Is keeps working across the boundary.
func Wrap(err error, code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func Internal(err error) *APIError {
	return Wrap(err, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}

// As returns err as an *APIError when one is in its chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
