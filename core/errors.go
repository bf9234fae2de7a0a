package core

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes failures surfaced by backend clients.
type ErrorCode string

const (
	ErrBadRequest       ErrorCode = "bad_request"
	ErrUnauthorized     ErrorCode = "unauthorized"
	ErrForbidden        ErrorCode = "forbidden"
	ErrNotFound         ErrorCode = "not_found"
	ErrMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrRateLimited      ErrorCode = "rate_limited"
	ErrNotSupported     ErrorCode = "not_supported"
	ErrHTTP             ErrorCode = "http_error"
)

// APIError provides rich context for listing-service failures.
type APIError struct {
	Code       ErrorCode
	Message    string
	Status     int
	RetryAfter float64
	Details    map[string]any
	wrapped    error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.wrapped)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.wrapped }

// NewError builds an APIError explicitly.
func NewError(code ErrorCode, message string, opts ...ErrorOption) *APIError {
	e := &APIError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ErrorOption mutates an APIError during construction.
type ErrorOption func(*APIError)

// WithStatus sets the HTTP status code.
func WithStatus(status int) ErrorOption {
	return func(e *APIError) { e.Status = status }
}

// WithRetryAfter sets retry-after seconds.
func WithRetryAfter(seconds float64) ErrorOption {
	return func(e *APIError) { e.RetryAfter = seconds }
}

// WithDetails attaches the decoded error body.
func WithDetails(details map[string]any) ErrorOption {
	return func(e *APIError) { e.Details = details }
}

// WithWrapped attaches an underlying error.
func WithWrapped(err error) ErrorOption {
	return func(e *APIError) { e.wrapped = err }
}

func classify(code ErrorCode) func(error) bool {
	return func(err error) bool {
		var api *APIError
		if err == nil {
			return false
		}
		if errors.As(err, &api) {
			return api.Code == code
		}
		return false
	}
}

// Helper predicates for common error handling patterns.
var (
	IsBadRequest       = classify(ErrBadRequest)
	IsUnauthorized     = classify(ErrUnauthorized)
	IsForbidden        = classify(ErrForbidden)
	IsNotFound         = classify(ErrNotFound)
	IsMethodNotAllowed = classify(ErrMethodNotAllowed)
	IsRateLimited      = classify(ErrRateLimited)
	IsNotSupported     = classify(ErrNotSupported)
)

// AsAPIError extracts the APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var api *APIError
	if errors.As(err, &api) {
		return api, true
	}
	return nil, false
}

// GetRetryAfter extracts the retry-after hint in seconds.
func GetRetryAfter(err error) float64 {
	var api *APIError
	if errors.As(err, &api) {
		return api.RetryAfter
	}
	return 0
}
