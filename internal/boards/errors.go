package boards

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vantage/pkg/repository"
)

var (
	ErrNotFound    = errors.New("board not found")
	ErrDuplicate   = errors.New("board name already in use")
	ErrInvalidName = errors.New("board name must be 1-120 characters")
)

var repoErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
}

// MapHTTPStatus maps board errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
