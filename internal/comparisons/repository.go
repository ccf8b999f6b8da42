package comparisons

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/vantage/internal/boards"
	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/internal/improvements"
	"github.com/JaimeStill/vantage/pkg/ranking"
	"github.com/JaimeStill/vantage/pkg/repository"
	"github.com/JaimeStill/vantage/pkg/storage"
)

const snapshotRoot = "snapshots"

// Options tunes pair selection and background recomputation.
type Options struct {
	Selector ranking.Selector
	Workers  int
}

type repo struct {
	db      *sql.DB
	store   storage.System
	boards  boards.System
	logger  *slog.Logger
	options Options
	now     func() time.Time
}

// New creates the comparison system.
func New(
	db *sql.DB,
	store storage.System,
	boardSys boards.System,
	logger *slog.Logger,
	options Options,
) System {
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &repo{
		db:      db,
		store:   store,
		boards:  boardSys,
		logger:  logger.With("system", "comparisons"),
		options: options,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Next(ctx context.Context, boardID uuid.UUID) (*Matchup, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Matchup, error) {
		items, history, err := r.load(ctx, tx, boardID)
		if err != nil {
			return nil, err
		}

		m := BuildMatchup(boardID, r.options.Selector, items, history)
		return &m, nil
	})
}

func (r *repo) Decide(
	ctx context.Context,
	boardID uuid.UUID,
	cmd decisions.RecordCommand,
) (*Outcome, error) {
	cmd.BoardID = boardID
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDecision, err)
	}

	out, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Outcome, error) {
		if err := lockBoard(ctx, tx, boardID); err != nil {
			return nil, err
		}

		for _, id := range []uuid.UUID{cmd.ItemAID, cmd.ItemBID} {
			if err := onBoard(ctx, tx, boardID, id); err != nil {
				return nil, err
			}
		}

		d, err := decisions.Append(ctx, tx, cmd)
		if err != nil {
			return nil, err
		}

		s, err := r.recompute(ctx, tx, boardID)
		if err != nil {
			return nil, err
		}

		return &Outcome{Decision: d, Standings: *s}, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"decision recorded",
		"board_id", boardID,
		"decision_id", out.Decision.ID,
		"winner_id", out.Decision.WinnerID,
	)
	return out, nil
}

func (r *repo) AddImprovement(
	ctx context.Context,
	cmd improvements.CreateCommand,
) (*improvements.Improvement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*improvements.Improvement, error) {
		if err := lockBoard(ctx, tx, cmd.BoardID); err != nil {
			if errors.Is(err, ErrBoardNotFound) {
				return nil, improvements.ErrBoardNotFound
			}
			return nil, err
		}

		i, err := improvements.Insert(ctx, tx, cmd)
		if err != nil {
			return nil, err
		}

		if _, err := r.recompute(ctx, tx, cmd.BoardID); err != nil {
			return nil, err
		}

		i, err = improvements.Find(ctx, tx, i.ID)
		if err != nil {
			return nil, fmt.Errorf("reload improvement: %w", err)
		}
		return &i, nil
	})
}

func (r *repo) RemoveImprovement(ctx context.Context, id uuid.UUID) error {
	return repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		i, err := improvements.Find(ctx, tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return improvements.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find improvement: %w", err)
		}

		// A board deleted since the read took the improvement with it.
		if err := lockBoard(ctx, tx, i.BoardID); err != nil {
			if errors.Is(err, ErrBoardNotFound) {
				return improvements.ErrNotFound
			}
			return err
		}
		if err := improvements.Remove(ctx, tx, id); err != nil {
			return err
		}

		_, err = r.recompute(ctx, tx, i.BoardID)
		return err
	})
}

func (r *repo) Undo(ctx context.Context, boardID, decisionID uuid.UUID) (*Standings, error) {
	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Standings, error) {
		if err := lockBoard(ctx, tx, boardID); err != nil {
			return nil, err
		}
		if err := decisions.Remove(ctx, tx, boardID, decisionID); err != nil {
			return nil, err
		}
		return r.recompute(ctx, tx, boardID)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("decision removed", "board_id", boardID, "decision_id", decisionID)
	return s, nil
}

func (r *repo) UndoLast(ctx context.Context, boardID uuid.UUID) (*Standings, error) {
	var removed uuid.UUID

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Standings, error) {
		if err := lockBoard(ctx, tx, boardID); err != nil {
			return nil, err
		}

		last, err := decisions.Latest(ctx, tx, boardID)
		if errors.Is(err, decisions.ErrNotFound) {
			return nil, ErrNoDecisions
		}
		if err != nil {
			return nil, err
		}

		if err := decisions.Remove(ctx, tx, boardID, last.ID); err != nil {
			return nil, err
		}
		removed = last.ID

		return r.recompute(ctx, tx, boardID)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("last decision undone", "board_id", boardID, "decision_id", removed)
	return s, nil
}

func (r *repo) Standings(ctx context.Context, boardID uuid.UUID) (*Standings, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Standings, error) {
		items, history, err := r.load(ctx, tx, boardID)
		if err != nil {
			return nil, err
		}

		s, _ := BuildStandings(boardID, items, history, r.now())
		return &s, nil
	})
}

func (r *repo) Recompute(ctx context.Context, boardID uuid.UUID) (*Standings, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Standings, error) {
		if err := lockBoard(ctx, tx, boardID); err != nil {
			return nil, err
		}
		return r.recompute(ctx, tx, boardID)
	})
}

func (r *repo) RecomputeAll(ctx context.Context) error {
	ids, err := r.boards.IDs(ctx)
	if err != nil {
		return fmt.Errorf("list boards: %w", err)
	}

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.Workers)

	for _, id := range ids {
		g.Go(func() error {
			_, err := r.Recompute(gctx, id)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, ErrBoardNotFound):
				return nil
			default:
				r.logger.Error("recompute board failed", "board_id", id, "error", err)
				return fmt.Errorf("recompute board %s: %w", id, err)
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	r.logger.Info(
		"boards recomputed",
		"count", len(ids),
		"duration", time.Since(start).String(),
	)
	return nil
}

func (r *repo) Snapshot(ctx context.Context, boardID uuid.UUID) (*Snapshot, error) {
	s, err := r.Standings(ctx, boardID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := snapshotKey(boardID, s.ComputedAt)
	if err := r.store.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	r.logger.Info("snapshot stored", "board_id", boardID, "key", key)
	return &Snapshot{Key: key, Standings: *s}, nil
}

func (r *repo) Snapshots(ctx context.Context, boardID uuid.UUID) ([]storage.Item, error) {
	if err := boardExists(ctx, r.db, boardID); err != nil {
		return nil, err
	}

	items, err := r.store.List(ctx, snapshotPrefix(boardID), 0)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return items, nil
}

func (r *repo) OpenSnapshot(ctx context.Context, boardID uuid.UUID, name string) (*storage.Blob, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, storage.ErrInvalidKey
	}
	return r.store.Download(ctx, snapshotPrefix(boardID)+name)
}

// load reads a board's improvements and decision log without locking.
func (r *repo) load(
	ctx context.Context,
	q repository.Querier,
	boardID uuid.UUID,
) ([]improvements.Improvement, []decisions.Decision, error) {
	if err := boardExists(ctx, q, boardID); err != nil {
		return nil, nil, err
	}

	items, err := improvements.ListForBoard(ctx, q, boardID)
	if err != nil {
		return nil, nil, err
	}

	history, err := decisions.ListForBoard(ctx, q, boardID)
	if err != nil {
		return nil, nil, err
	}

	return items, history, nil
}

// recompute replays the board's log and stores every standing. The caller
// holds the board lock.
func (r *repo) recompute(ctx context.Context, tx *sql.Tx, boardID uuid.UUID) (*Standings, error) {
	items, history, err := r.load(ctx, tx, boardID)
	if err != nil {
		return nil, err
	}

	if err := ranking.Validate(
		improvements.RankingItems(items),
		decisions.RankingDecisions(history),
	); err != nil {
		r.logger.Warn("inconsistent decision log", "board_id", boardID, "error", err)
	}

	s, ranked := BuildStandings(boardID, items, history, r.now())
	if err := improvements.ApplyRanking(ctx, tx, ranked); err != nil {
		return nil, err
	}

	return &s, nil
}

func lockBoard(ctx context.Context, tx *sql.Tx, boardID uuid.UUID) error {
	if err := repository.LockKey(ctx, tx, "board:"+boardID.String()); err != nil {
		return fmt.Errorf("lock board: %w", err)
	}
	return boardExists(ctx, tx, boardID)
}

func boardExists(ctx context.Context, q repository.Querier, boardID uuid.UUID) error {
	var exists bool
	err := q.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM boards WHERE id = $1)",
		boardID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check board: %w", err)
	}
	if !exists {
		return ErrBoardNotFound
	}
	return nil
}

func onBoard(ctx context.Context, q repository.Querier, boardID, improvementID uuid.UUID) error {
	imp, err := improvements.Find(ctx, q, improvementID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrItemNotOnBoard, improvementID)
	}
	if err != nil {
		return fmt.Errorf("find improvement: %w", err)
	}
	if imp.BoardID != boardID {
		return fmt.Errorf("%w: %s", ErrItemNotOnBoard, improvementID)
	}
	return nil
}

func snapshotPrefix(boardID uuid.UUID) string {
	return path.Join(snapshotRoot, boardID.String()) + "/"
}

func snapshotKey(boardID uuid.UUID, at time.Time) string {
	return snapshotPrefix(boardID) + at.Format("20060102T150405.000000000Z") + ".json"
}
