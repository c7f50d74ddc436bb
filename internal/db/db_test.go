package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchemaAndParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ops.sqlite3")
	d, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{"accounts", "sec_events", "data_assets", "it_requests"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		var n int
		require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		require.Zero(t, n, "table %s should start empty", table)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.sqlite3")

	d, err := Open(path)
	require.NoError(t, err)
	_, err = d.Exec(`INSERT INTO accounts (handle, pass_hash, access_level) VALUES ('a', 'h', 'Owner')`)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	// Second open must not drop or alter existing data.
	d2, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d2.Close() })

	var n int
	require.NoError(t, d2.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestWithTx_CommitsOnNil(t *testing.T) {
	d, err := Open("file:storecommit?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	store := NewStore(d)

	err = store.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO accounts (handle, pass_hash, access_level) VALUES ('a', 'h', 'Owner')`)
		return err
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestWithTx_DiscardsOnError(t *testing.T) {
	d, err := Open("file:storerollback?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	store := NewStore(d)

	boom := errors.New("boom")
	err = store.WithTx(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO accounts (handle, pass_hash, access_level) VALUES ('a', 'h', 'Owner')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// A failure mid-scope must never leave a partial write committed.
	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	require.Zero(t, n)
}
