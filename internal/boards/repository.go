package boards

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

// New creates the board repository.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "boards"),
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
) (*pagination.PageResult[Board], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description").
		OrderByFields(page.Sort)

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count boards: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBoard)
	if err != nil {
		return nil, fmt.Errorf("query boards: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Board, error) {
	b, err := find(ctx, r.db, id)
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Board, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Board, error) {
		id := uuid.New()
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO boards(id, name, description) VALUES ($1, $2, $3)",
			id, cmd.Name, cmd.Description,
		); err != nil {
			return Board{}, err
		}
		return find(ctx, tx, id)
	})
	if err != nil {
		return nil, repoErrors.Map(err)
	}

	r.logger.Info("board created", "id", b.ID, "name", b.Name)
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Board, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Board, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE boards SET name = $2, description = $3, updated_at = now() WHERE id = $1",
			id, cmd.Name, cmd.Description,
		); err != nil {
			return Board{}, err
		}
		return find(ctx, tx, id)
	})
	if err != nil {
		return nil, repoErrors.Map(err)
	}

	r.logger.Info("board updated", "id", b.ID)
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM boards WHERE id = $1", id)
	})
	if err != nil {
		return repoErrors.Map(err)
	}

	r.logger.Info("board deleted", "id", id)
	return nil
}

func (r *repo) IDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := repository.QueryMany(
		ctx, r.db,
		"SELECT id FROM boards ORDER BY created_at, id",
		nil,
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query board ids: %w", err)
	}
	return ids, nil
}

func find(ctx context.Context, q repository.Querier, id uuid.UUID) (Board, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)
	return repository.QueryOne(ctx, q, stmt, args, scanBoard)
}
