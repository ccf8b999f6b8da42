package comparisons

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/pkg/storage"
)

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrItemNotOnBoard  = errors.New("improvement does not belong to the board")
	ErrNoDecisions     = errors.New("board has no decisions to undo")
	ErrInvalidDecision = errors.New("invalid decision")
)

// MapHTTPStatus maps comparison errors to HTTP status codes. Decision and
// storage errors are delegated to their packages.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBoardNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrItemNotOnBoard), errors.Is(err, ErrInvalidDecision):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoDecisions):
		return http.StatusConflict
	}

	if status := decisions.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return storage.MapHTTPStatus(err)
}
