package evidence

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/repository"
	"github.com/JaimeStill/vantage/pkg/storage"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates the evidence repository.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "evidence"),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) ListByImprovement(ctx context.Context, improvementID uuid.UUID) ([]Evidence, error) {
	stmt, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ImprovementID", improvementID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, stmt, args, scanEvidence)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Evidence, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, stmt, args, scanEvidence)
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Evidence, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	args := []any{id, cmd.ImprovementID, cmd.Note, nil, nil, nil, nil, nil}

	var key string
	if f := cmd.File; f != nil {
		key = buildStorageKey(cmd.ImprovementID, id, sanitizeFilename(f.Filename))
		if err := r.storage.Upload(ctx, key, bytes.NewReader(f.Data), f.ContentType); err != nil {
			return nil, fmt.Errorf("upload evidence blob: %w", err)
		}
		args = []any{id, cmd.ImprovementID, cmd.Note, f.Filename, f.ContentType, int64(len(f.Data)), f.PageCount, key}
	}

	const stmt = `
		INSERT INTO evidence(id, improvement_id, note, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, improvement_id, note, filename, content_type, size_bytes, page_count, storage_key, created_at`

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evidence, error) {
		return repository.QueryOne(ctx, tx, stmt, args, scanEvidence)
	})
	if err != nil {
		if key != "" {
			if delErr := r.storage.Delete(ctx, key); delErr != nil {
				r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
			}
		}
		return nil, repoErrors.Map(err)
	}

	r.logger.Info("evidence created", "id", e.ID, "improvement_id", e.ImprovementID, "attachment", e.HasAttachment())
	return &e, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Evidence, *storage.Blob, error) {
	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !e.HasAttachment() {
		return nil, nil, ErrNoAttachment
	}

	blob, err := r.storage.Download(ctx, *e.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download evidence %s: %w", id, err)
	}
	return e, blob, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	err = repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM evidence WHERE id = $1", id)
	})
	if err != nil {
		return repoErrors.Map(err)
	}

	if e.HasAttachment() {
		if delErr := r.storage.Delete(ctx, *e.StorageKey); delErr != nil {
			r.logger.Warn("blob delete failed after row delete", "key", *e.StorageKey, "error", delErr)
		}
	}

	r.logger.Info("evidence deleted", "id", id)
	return nil
}

func buildStorageKey(improvementID, id uuid.UUID, filename string) string {
	return fmt.Sprintf("evidence/%s/%s/%s", improvementID, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		name = "attachment"
	}
	return url.PathEscape(name)
}
