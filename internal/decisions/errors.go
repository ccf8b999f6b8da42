package decisions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vantage/pkg/repository"
)

var (
	ErrNotFound      = errors.New("decision not found")
	ErrItemNotFound  = errors.New("decision references an unknown improvement")
	ErrMissingItem   = errors.New("item_a_id and item_b_id are required")
	ErrSelfPair      = errors.New("an improvement cannot be compared with itself")
	ErrInvalidWinner = errors.New("winner must be one of the compared improvements")
)

var repoErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Reference: ErrItemNotFound,
}

// MapHTTPStatus maps decision errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrMissingItem),
		errors.Is(err, ErrSelfPair),
		errors.Is(err, ErrInvalidWinner):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
