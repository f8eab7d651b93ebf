package tones

import (
	"errors"
	"net/http"
)

// Domain errors for tone override operations.
var (
	ErrNotFound        = errors.New("tone override not found")
	ErrDuplicate       = errors.New("tone override name already exists")
	ErrInvalidTone     = errors.New("tone must be positive or constructive")
	ErrInvalidOverride = errors.New("override name and instructions are required")
)

// MapHTTPStatus maps tone domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTone) || errors.Is(err, ErrInvalidOverride) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
