package comparisons

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/internal/improvements"
	"github.com/JaimeStill/vantage/pkg/storage"
)

// System runs ranking sessions. Every operation that changes a board's
// items or decision log recomputes and stores its standings in the same
// transaction, serialized per board.
type System interface {
	Handler() *Handler

	// Roster adds and removes improvements under the board lock. Removing
	// one drops its decisions, so the board is replayed afterwards.
	improvements.Roster

	// Next returns the next pair to compare, or a complete Matchup.
	Next(ctx context.Context, boardID uuid.UUID) (*Matchup, error)

	// Decide appends a decision and recomputes the board.
	Decide(ctx context.Context, boardID uuid.UUID, cmd decisions.RecordCommand) (*Outcome, error)

	// Undo removes one decision and recomputes the board.
	Undo(ctx context.Context, boardID, decisionID uuid.UUID) (*Standings, error)

	// UndoLast removes the most recent decision and recomputes the board.
	UndoLast(ctx context.Context, boardID uuid.UUID) (*Standings, error)

	// Standings computes the ranking without storing it.
	Standings(ctx context.Context, boardID uuid.UUID) (*Standings, error)

	// Recompute computes and stores the board's ranking.
	Recompute(ctx context.Context, boardID uuid.UUID) (*Standings, error)

	// RecomputeAll recomputes every board with bounded parallelism.
	RecomputeAll(ctx context.Context) error

	// Snapshot writes the current standings to blob storage as JSON.
	Snapshot(ctx context.Context, boardID uuid.UUID) (*Snapshot, error)

	// Snapshots lists stored snapshots for the board, oldest first, up to
	// the storage listing cap.
	Snapshots(ctx context.Context, boardID uuid.UUID) ([]storage.Item, error)

	// OpenSnapshot opens a stored snapshot by file name. The caller closes
	// the blob body.
	OpenSnapshot(ctx context.Context, boardID uuid.UUID, name string) (*storage.Blob, error)
}
