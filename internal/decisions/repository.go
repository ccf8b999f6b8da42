package decisions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/pagination"
	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the decision repository.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "decisions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Decision], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		OrderByFields(page.Sort)

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count decisions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDecision)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Decision, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, stmt, args, scanDecision)
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &d, nil
}

// Append validates cmd and inserts it through q, normally a transaction
// holding the board lock.
func Append(ctx context.Context, q repository.Querier, cmd RecordCommand) (Decision, error) {
	if err := cmd.Validate(); err != nil {
		return Decision{}, err
	}

	const stmt = `
		INSERT INTO decisions(id, board_id, item_a_id, item_b_id, winner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, board_id, item_a_id, item_b_id, winner_id, decided_at`

	d, err := repository.QueryOne(
		ctx, q, stmt,
		[]any{uuid.New(), cmd.BoardID, cmd.ItemAID, cmd.ItemBID, cmd.WinnerID},
		scanDecision,
	)
	if err != nil {
		return Decision{}, repoErrors.Map(err)
	}
	return d, nil
}

// Remove deletes decision id from the board's log. A decision on another
// board is reported as ErrNotFound.
func Remove(ctx context.Context, e repository.Executor, boardID, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, e,
		"DELETE FROM decisions WHERE id = $1 AND board_id = $2",
		id, boardID,
	)
	return repoErrors.Map(err)
}

// Latest returns the most recent decision on the board, or ErrNotFound when
// the log is empty.
func Latest(ctx context.Context, q repository.Querier, boardID uuid.UUID) (Decision, error) {
	qb := query.
		NewBuilder(projection).
		WhereEquals("BoardID", boardID).
		OrderByFields([]query.SortField{
			{Field: "DecidedAt", Descending: true},
			{Field: "ID", Descending: true},
		})

	stmt, args := qb.BuildPage(1, 1)
	d, err := repository.QueryOne(ctx, q, stmt, args, scanDecision)
	if err != nil {
		return Decision{}, repoErrors.Map(err)
	}
	return d, nil
}

// ListForBoard returns the board's full log in replay order.
func ListForBoard(ctx context.Context, q repository.Querier, boardID uuid.UUID) ([]Decision, error) {
	stmt, args := query.
		NewBuilder(projection, chronological...).
		WhereEquals("BoardID", boardID).
		Build()

	items, err := repository.QueryMany(ctx, q, stmt, args, scanDecision)
	if err != nil {
		return nil, fmt.Errorf("list board decisions: %w", err)
	}
	return items, nil
}
