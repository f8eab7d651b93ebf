package feedback

import (
	"errors"
	"net/http"
)

// Domain errors for feedback operations. ErrMissingFields, ErrSaveFailed,
// and ErrUnauthorized carry the exact text the submission endpoint's wire
// contract requires.
var (
	ErrMissingFields   = errors.New("Missing required fields")
	ErrSaveFailed      = errors.New("Failed to save feedback")
	ErrFetchFailed     = errors.New("Failed to fetch feedback")
	ErrUnauthorized    = errors.New("Unauthorized")
	ErrNotFound        = errors.New("feedback not found")
	ErrDuplicate       = errors.New("feedback already exists")
	ErrInvalidCategory = errors.New("category must be loved, liked, better, or poor")
)

// MapHTTPStatus maps feedback domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidCategory) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// PublicError converts err into the stable wire-contract error for its
// status class. Validation and authorization errors pass through;
// storage-layer detail (not configured, write rejected) collapses into
// ErrSaveFailed so internals never leak to the caller.
func PublicError(err error) error {
	switch MapHTTPStatus(err) {
	case http.StatusBadRequest:
		return ErrMissingFields
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrSaveFailed
	}
}
