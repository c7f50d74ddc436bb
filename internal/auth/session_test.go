package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_RoundTrip(t *testing.T) {
	id := &Identity{ID: 7, Handle: "admin", AccessLevel: "Owner"}

	token, err := IssueSession(id, "secret", time.Hour)
	require.NoError(t, err)

	got, err := ParseSession(token, "secret")
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestSession_RejectsWrongSecret(t *testing.T) {
	token, err := IssueSession(&Identity{Handle: "admin"}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSession(token, "other-secret")
	require.Error(t, err)
}

func TestSession_RejectsExpired(t *testing.T) {
	token, err := IssueSession(&Identity{Handle: "admin"}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSession(token, "secret")
	require.Error(t, err)
}

func TestSession_RequiresSecret(t *testing.T) {
	_, err := IssueSession(&Identity{Handle: "admin"}, "", time.Hour)
	require.Error(t, err)
}
