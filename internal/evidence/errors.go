package evidence

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vantage/pkg/repository"
	"github.com/JaimeStill/vantage/pkg/storage"
)

var (
	ErrNotFound            = errors.New("evidence not found")
	ErrImprovementNotFound = errors.New("improvement not found")
	ErrNoAttachment        = errors.New("evidence has no attached file")
	ErrFileTooLarge        = errors.New("file exceeds maximum upload size")
	ErrInvalidFile         = errors.New("invalid file")
	ErrInvalidNote         = errors.New("note must be 1-4000 characters")
)

var repoErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Reference: ErrImprovementNotFound,
}

// MapHTTPStatus maps evidence errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrImprovementNotFound),
		errors.Is(err, ErrNoAttachment):
		return http.StatusNotFound
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile), errors.Is(err, ErrInvalidNote):
		return http.StatusBadRequest
	default:
		return storage.MapHTTPStatus(err)
	}
}
