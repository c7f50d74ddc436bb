package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"opsCommandCenter/internal/db"
	"opsCommandCenter/models"
)

// AccountRepository provides lookups over the accounts table. Accounts are
// created only through seeding; in-core they are never updated or deleted.
type AccountRepository struct {
	store *db.Store
}

func NewAccountRepository(store *db.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// GetByHandle fetches an account by exact handle match.
// Returns (nil, nil) when no such account exists.
func (r *AccountRepository) GetByHandle(ctx context.Context, handle string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a models.Account
	err := r.store.DB().QueryRowContext(ctx,
		`SELECT id, handle, pass_hash, access_level FROM accounts WHERE handle = ?`, handle).
		Scan(&a.ID, &a.Handle, &a.PassHash, &a.AccessLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// InsertIgnoreTx inserts an account unless its handle already exists.
// Runs inside the seeder's scope.
func (r *AccountRepository) InsertIgnoreTx(ctx context.Context, tx *sql.Tx, a *models.Account) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO accounts (handle, pass_hash, access_level) VALUES (?,?,?)`,
		a.Handle, a.PassHash, a.AccessLevel)
	return err
}

// Count returns the number of stored accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n)
	return n, err
}
