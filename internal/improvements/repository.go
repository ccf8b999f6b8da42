package improvements

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/pagination"
	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/ranking"
	"github.com/JaimeStill/vantage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	roster     Roster
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the improvement repository. Creates and deletes go through
// roster so the board's stored standings follow the item set.
func New(db *sql.DB, roster Roster, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		roster:     roster,
		logger:     logger.With("system", "improvements"),
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
) (*pagination.PageResult[Improvement], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Title", "Description").
		OrderByFields(page.Sort)

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count improvements: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanImprovement)
	if err != nil {
		return nil, fmt.Errorf("query improvements: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Improvement, error) {
	i, err := Find(ctx, r.db, id)
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Improvement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	i, err := r.roster.AddImprovement(ctx, cmd)
	if err != nil {
		return nil, err
	}

	r.logger.Info("improvement created", "id", i.ID, "board_id", i.BoardID, "category", i.Category)
	return i, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Improvement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return r.modify(ctx, id,
		`UPDATE improvements SET title = $2, description = $3, category = $4, updated_at = now()
		WHERE id = $1`,
		cmd.Title, cmd.Description, cmd.Category,
	)
}

func (r *repo) Estimate(ctx context.Context, id uuid.UUID, cmd EstimateCommand) (*Improvement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	i, err := r.modify(ctx, id,
		"UPDATE improvements SET effort_level = $2, updated_at = now() WHERE id = $1",
		cmd.EffortLevel,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Info("improvement estimated", "id", id, "effort_level", i.ToRankingItem().Effort)
	return i, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.roster.RemoveImprovement(ctx, id); err != nil {
		return err
	}

	r.logger.Info("improvement deleted", "id", id)
	return nil
}

func (r *repo) modify(ctx context.Context, id uuid.UUID, stmt string, args ...any) (*Improvement, error) {
	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Improvement, error) {
		if err := repository.ExecExpectOne(ctx, tx, stmt, append([]any{id}, args...)...); err != nil {
			return Improvement{}, err
		}
		return Find(ctx, tx, id)
	})
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &i, nil
}

// Insert adds the improvement described by cmd through q. The caller
// validates cmd and holds the board lock.
func Insert(ctx context.Context, q repository.Querier, cmd CreateCommand) (Improvement, error) {
	var id uuid.UUID
	if err := q.QueryRowContext(
		ctx,
		`INSERT INTO improvements(id, board_id, title, description, category, effort_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		uuid.New(), cmd.BoardID, cmd.Title, cmd.Description, cmd.Category, cmd.EffortLevel,
	).Scan(&id); err != nil {
		return Improvement{}, repoErrors.Map(err)
	}

	i, err := Find(ctx, q, id)
	return i, repoErrors.Map(err)
}

// Remove deletes the improvement through e. Its evidence rows and every
// decision it took part in go with it.
func Remove(ctx context.Context, e repository.Executor, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, e, "DELETE FROM improvements WHERE id = $1", id)
	return repoErrors.Map(err)
}

// Find reads one improvement through q. A missing row is sql.ErrNoRows.
func Find(ctx context.Context, q repository.Querier, id uuid.UUID) (Improvement, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)
	return repository.QueryOne(ctx, q, stmt, args, scanImprovement)
}

// ListForBoard returns every improvement on the board in creation order.
// The order is stable across calls, which the pair selector relies on.
func ListForBoard(ctx context.Context, q repository.Querier, boardID uuid.UUID) ([]Improvement, error) {
	stmt, args := query.
		NewBuilder(projection, inputOrder...).
		WhereEquals("BoardID", boardID).
		Build()

	items, err := repository.QueryMany(ctx, q, stmt, args, scanImprovement)
	if err != nil {
		return nil, fmt.Errorf("list board improvements: %w", err)
	}
	return items, nil
}

// ApplyRanking stores each item's computed standing.
func ApplyRanking(ctx context.Context, e repository.Executor, ranked []ranking.RankedItem) error {
	const stmt = `
		UPDATE improvements
		SET rank_position = $2, confidence = $3, impact_score = $4, wins = $5, comparisons = $6
		WHERE id = $1`

	for _, item := range ranked {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return fmt.Errorf("ranked item %q: %w", item.ID, err)
		}
		if _, err := e.ExecContext(
			ctx, stmt,
			id, item.RankPosition, item.Confidence, item.ImpactScore, item.Wins, item.Comparisons,
		); err != nil {
			return fmt.Errorf("apply ranking to %s: %w", id, err)
		}
	}
	return nil
}
