package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxFunc is the body of a scoped transaction.
type TxFunc func(*sqlx.Tx) error

// Transaction runs fn inside a transaction: commit on success, rollback
// on any error, regardless of how fn exits. The connection is returned to
// the pool either way. A dropped client context cancels in-flight
// statements; Postgres then rolls back, so no partial write survives.
func Transaction(ctx context.Context, db *sqlx.DB, fn TxFunc) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
