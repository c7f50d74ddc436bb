package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Sessions turn a successful authentication into a signed HS256 token the
// dashboard holds in a cookie, replacing ambient "currently signed-in"
// process state with an explicit object created on sign-in and discarded on
// sign-out.

// DefaultSessionTTL bounds how long a signed-in dashboard session stays
// valid without re-authenticating.
const DefaultSessionTTL = 12 * time.Hour

type sessionClaims struct {
	Handle      string `json:"handle"`
	AccessLevel string `json:"access_level"`
	AccountID   int64  `json:"account_id"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token for the identity.
func IssueSession(id *Identity, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("session secret is empty")
	}
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	now := time.Now()
	claims := sessionClaims{
		Handle:      id.Handle,
		AccessLevel: id.AccessLevel,
		AccountID:   id.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSession validates a session token and recovers the identity.
func ParseSession(tokenStr, secret string) (*Identity, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*sessionClaims)
	if c == nil || c.Handle == "" {
		return nil, errors.New("invalid claims")
	}
	return &Identity{ID: c.AccountID, Handle: c.Handle, AccessLevel: c.AccessLevel}, nil
}

type identityKey struct{}

// WithIdentity stores the signed-in identity in context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the signed-in identity from context (if any).
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok
}
