package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"opsCommandCenter/internal/db"
)

// The three queue tables (sec_events, data_assets, it_requests) are
// structurally identical up to field lists: one unique operator-facing key,
// one text ordering column, one mutable status column, and a bag of typed
// fields. A single generic repository parameterized by a Descriptor covers
// all of them without triplicating the SQL plumbing.

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Descriptor describes one queue entity: where it lives and how to move it
// in and out of SQL.
type Descriptor[T any] struct {
	Table        string   // table name
	KeyColumn    string   // unique operator-facing key
	OrderColumn  string   // ListAll orders by this column, descending
	StatusColumn string   // the one mutable field UpdateStatus may touch
	Columns      []string // insert columns, excluding the identity column

	Key   func(*T) string           // unique key value of an entity
	Bind  func(*T) []any            // values matching Columns, in order
	Scan  func(scanner) (*T, error) // scans id + Columns
	SetID func(*T, int64)           // stores the generated identity after insert
}

// Repository provides list/update/insert over one queue table.
type Repository[T any] struct {
	store *db.Store
	desc  Descriptor[T]
}

// New builds a repository from an entity descriptor.
func New[T any](store *db.Store, desc Descriptor[T]) *Repository[T] {
	return &Repository[T]{store: store, desc: desc}
}

// ListAll returns every row ordered by the descriptor's order column,
// newest first (lexicographic on the text column, so callers must store
// sortable date formats). An empty table yields an empty slice, not an error.
func (r *Repository[T]) ListAll(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY %s DESC`,
		strings.Join(r.desc.Columns, ", "), r.desc.Table, r.desc.OrderColumn)
	rows, err := r.store.DB().QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := r.desc.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByKey fetches one row by its unique key, or (nil, nil) when absent.
func (r *Repository[T]) GetByKey(ctx context.Context, key string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := fmt.Sprintf(`SELECT id, %s FROM %s WHERE %s = ?`,
		strings.Join(r.desc.Columns, ", "), r.desc.Table, r.desc.KeyColumn)
	v, err := r.desc.Scan(r.store.DB().QueryRowContext(ctx, q, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// UpdateStatus sets the entity's one mutable status field for the row
// matching key. A missing key is a silent no-op: callers pass keys obtained
// from ListAll, so "nothing matched" is not reported as an error.
func (r *Repository[T]) UpdateStatus(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		q := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`,
			r.desc.Table, r.desc.StatusColumn, r.desc.KeyColumn)
		_, err := tx.ExecContext(ctx, q, value, key)
		return err
	})
}

// Insert adds a new row. A duplicate unique key fails with ErrDuplicateKey
// and leaves the existing row unchanged; other constraint violations
// propagate as storage errors. On success the generated ID is set on v.
func (r *Repository[T]) Insert(ctx context.Context, v *T) error {
	if v == nil {
		return errors.New("entity is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		return r.InsertTx(ctx, tx, v)
	})
}

// InsertTx is Insert running inside a caller-owned scope. The seeder uses it
// to load many rows under one commit-or-discard cycle.
func (r *Repository[T]) InsertTx(ctx context.Context, tx *sql.Tx, v *T) error {
	res, err := tx.ExecContext(ctx, r.insertSQL(""), r.desc.Bind(v)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s %q: %w", r.desc.KeyColumn, r.desc.Key(v), ErrDuplicateKey)
		}
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		r.desc.SetID(v, id)
	}
	return nil
}

// InsertIgnoreTx inserts the row unless its unique key already exists, in
// which case nothing happens. Seed-path semantics.
func (r *Repository[T]) InsertIgnoreTx(ctx context.Context, tx *sql.Tx, v *T) error {
	_, err := tx.ExecContext(ctx, r.insertSQL("OR IGNORE "), r.desc.Bind(v)...)
	return err
}

// Count returns the number of rows in the table.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.store.DB().QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.desc.Table)).Scan(&n)
	return n, err
}

func (r *Repository[T]) insertSQL(modifier string) string {
	ph := strings.TrimSuffix(strings.Repeat("?,", len(r.desc.Columns)), ",")
	return fmt.Sprintf(`INSERT %sINTO %s (%s) VALUES (%s)`,
		modifier, r.desc.Table, strings.Join(r.desc.Columns, ", "), ph)
}
