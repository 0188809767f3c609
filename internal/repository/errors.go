package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrUniqueViolation  = errors.New("unique constraint violation")
	ErrConflictDetected = errors.New("concurrent modification detected")
)

const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// classify maps driver errors onto the package sentinels, keeping the original in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errors.Join(ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return errors.Join(ErrUniqueViolation, err)
		case pqForeignKeyViolation:
			return errors.Join(ErrNotFound, err)
		case pqSerializationFailure, pqDeadlockDetected:
			return errors.Join(ErrConflictDetected, err)
		}
	}

	return err
}

// execAll runs statements in order with the same arguments, stopping at the first failure.
func execAll(ctx context.Context, db sqlx.ExecerContext, statements []string, args ...interface{}) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
			return classify(err)
		}
	}
	return nil
}
