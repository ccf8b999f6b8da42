package boards

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/pagination"
)

// System defines the board domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Board], error)

	Find(ctx context.Context, id uuid.UUID) (*Board, error)
	Create(ctx context.Context, cmd Command) (*Board, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Board, error)

	// Delete removes the board along with its improvements, evidence and
	// decisions.
	Delete(ctx context.Context, id uuid.UUID) error

	// IDs returns every board id in creation order.
	IDs(ctx context.Context) ([]uuid.UUID, error)
}
