package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoToken is returned when a login succeeded but the backend sent no token
var ErrNoToken = errors.New("login response did not contain a token")

// TransportError is a request that produced no response
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the backend
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *APIError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed (status %d): %s", e.Method, e.URL, e.StatusCode, detail)
}

// RedirectError is a 301/302 the redirect policy did not follow
type RedirectError struct {
	Method     string
	URL        string
	StatusCode int
	Location   string
	Hops       int
}

func (e *RedirectError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("%s %s: redirect (status %d) without Location header", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unresolved redirect (status %d) to %s after %d hop(s)", e.Method, e.URL, e.StatusCode, e.Location, e.Hops)
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var redirectErr *RedirectError
	if errors.As(err, &redirectErr) {
		return redirectErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the backend
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsTransport reports whether err means the backend could not be reached
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
