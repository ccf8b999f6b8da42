package decisions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/pagination"
)

// System defines the read side of the decision log. Writes go through the
// package-level transactional helpers.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Decision], error)

	Find(ctx context.Context, id uuid.UUID) (*Decision, error)
}
