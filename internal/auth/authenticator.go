package auth

import (
	"context"

	"opsCommandCenter/internal/credentials"
	"opsCommandCenter/repository"
)

// Identity is the minimal authenticated principal: who signed in and their
// informational access tier. The core never enforces the tier.
type Identity struct {
	ID          int64  `json:"id"`
	Handle      string `json:"handle"`
	AccessLevel string `json:"access_level"`
}

// Authenticator verifies handle/password pairs against stored accounts.
// No lockout, no rate limiting; session handling is the caller's concern.
type Authenticator struct {
	accounts *repository.AccountRepository
}

func NewAuthenticator(accounts *repository.AccountRepository) *Authenticator {
	return &Authenticator{accounts: accounts}
}

// Authenticate looks up the account by exact handle and verifies the
// password against the stored bcrypt hash. An unknown handle or a mismatch
// both return (nil, nil): "no identity" is a result, not an error.
func (a *Authenticator) Authenticate(ctx context.Context, handle, password string) (*Identity, error) {
	acct, err := a.accounts.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, nil
	}
	if !credentials.Verify(password, acct.PassHash) {
		return nil, nil
	}
	return &Identity{ID: acct.ID, Handle: acct.Handle, AccessLevel: acct.AccessLevel}, nil
}
