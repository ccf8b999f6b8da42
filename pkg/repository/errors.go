package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Errors names the domain errors a repository reports for missing rows and
// constraint violations. A nil field leaves that case unmapped.
type Errors struct {
	NotFound  error
	Duplicate error
	Reference error
}

// Map translates err into the matching domain error. sql.ErrNoRows becomes
// NotFound, a unique violation Duplicate and a foreign key violation
// Reference. Anything else is returned unchanged.
func (e Errors) Map(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && e.NotFound != nil {
		return e.NotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && e.Duplicate != nil:
			return e.Duplicate
		case pgErr.Code == pgForeignKeyViolation && e.Reference != nil:
			return e.Reference
		}
	}

	return err
}
