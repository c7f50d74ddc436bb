package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Store wraps a *sql.DB with a scoped-transaction helper. Every logical unit
// of work runs inside exactly one WithTx scope: all statements issued within
// the scope commit together on a nil return, or are discarded together when
// the callback (or the commit itself) fails. There are no cross-scope
// transactions.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(d *sql.DB) *Store {
	return &Store{db: d}
}

// DB exposes the underlying handle for read paths that do not need a scope.
func (s *Store) DB() *sql.DB {
	return s.db
}

// WithTx begins a transaction, runs fn, and commits if fn returns nil.
// Any error from fn rolls the transaction back so no partial write is ever
// persisted; the original error is returned to the caller.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
