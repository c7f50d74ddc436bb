package auth

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"opsCommandCenter/internal/credentials"
	"opsCommandCenter/internal/db"
	"opsCommandCenter/internal/testutil"
	"opsCommandCenter/repository"
)

func newAuthenticator(t *testing.T, name string) (*Authenticator, *db.Store) {
	t.Helper()
	store := db.NewStore(testutil.OpenTestDB(t, name))
	return NewAuthenticator(repository.NewAccountRepository(store)), store
}

func storeAccount(t *testing.T, store *db.Store, handle, password, level string) {
	t.Helper()
	hash, err := credentials.Hash(password)
	require.NoError(t, err)
	err = store.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO accounts (handle, pass_hash, access_level) VALUES (?,?,?)`, handle, hash, level)
		return err
	})
	require.NoError(t, err)
}

func TestAuthenticate_Success(t *testing.T) {
	a, store := newAuthenticator(t, "auth_ok")
	storeAccount(t, store, "admin", "admin123", "Owner")

	id, err := a.Authenticate(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NotNil(t, id)
	require.Equal(t, "admin", id.Handle)
	require.Equal(t, "Owner", id.AccessLevel)
	require.NotZero(t, id.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	a, store := newAuthenticator(t, "auth_badpw")
	storeAccount(t, store, "admin", "admin123", "Owner")

	id, err := a.Authenticate(context.Background(), "admin", "wrong")
	require.NoError(t, err, "mismatch is no identity, not an error")
	require.Nil(t, id)
}

func TestAuthenticate_UnknownHandle(t *testing.T) {
	a, _ := newAuthenticator(t, "auth_unknown")

	id, err := a.Authenticate(context.Background(), "ghost", "whatever")
	require.NoError(t, err)
	require.Nil(t, id)
}
