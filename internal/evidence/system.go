package evidence

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/storage"
)

// System defines the evidence domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// ListByImprovement returns the improvement's evidence, newest first.
	ListByImprovement(ctx context.Context, improvementID uuid.UUID) ([]Evidence, error)

	Find(ctx context.Context, id uuid.UUID) (*Evidence, error)
	Create(ctx context.Context, cmd CreateCommand) (*Evidence, error)

	// Download opens the attached file. The caller closes the blob body.
	Download(ctx context.Context, id uuid.UUID) (*Evidence, *storage.Blob, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
