package improvements

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vantage/pkg/repository"
)

var (
	ErrNotFound        = errors.New("improvement not found")
	ErrDuplicate       = errors.New("an improvement with this title already exists on the board")
	ErrBoardNotFound   = errors.New("board not found")
	ErrInvalidTitle    = errors.New("title must be 1-200 characters")
	ErrInvalidCategory = errors.New("category must be one of UI_UX, DATA_QUALITY, WORKFLOW, BUG_FIX, FEATURE")
	ErrInvalidEffort   = errors.New("effort level must be one of SMALL, MEDIUM, LARGE")
)

var repoErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Reference: ErrBoardNotFound,
}

// MapHTTPStatus maps improvement errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBoardNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTitle),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidEffort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
