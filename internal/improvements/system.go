package improvements

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/pagination"
)

// System defines the improvement domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Improvement], error)

	Find(ctx context.Context, id uuid.UUID) (*Improvement, error)
	// Create adds an improvement and recomputes its board, so the new item
	// has a rank from the start.
	Create(ctx context.Context, cmd CreateCommand) (*Improvement, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Improvement, error)
	Estimate(ctx context.Context, id uuid.UUID, cmd EstimateCommand) (*Improvement, error)

	// Delete removes the improvement, its evidence rows and every decision
	// it took part in. The board is recomputed before Delete returns.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Roster adds and removes board items. Each call recomputes the board's
// stored standings in the same transaction as the change.
type Roster interface {
	AddImprovement(ctx context.Context, cmd CreateCommand) (*Improvement, error)
	RemoveImprovement(ctx context.Context, id uuid.UUID) error
}
