package identity

import (
	"errors"
	"net/http"
)

// Domain errors for identity operations.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotConfigured   = errors.New("identity provider not configured")
	ErrStateMismatch   = errors.New("login state mismatch")
)

// MapHTTPStatus maps identity errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrStateMismatch) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
