package credentials

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("admin123")
	require.NoError(t, err)
	require.True(t, Verify("admin123", h))
	require.False(t, Verify("wrong", h))
}

func TestHash_IsSalted(t *testing.T) {
	h1, err := Hash("same-password")
	require.NoError(t, err)
	h2, err := Hash("same-password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "two hashes of the same input must differ")
	require.True(t, Verify("same-password", h1))
	require.True(t, Verify("same-password", h2))
}

func TestAppendAccount_WritesCredentialLine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seed")

	require.NoError(t, AppendAccount(dir, "admin", "admin123", "Owner"))

	data, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	parts := strings.Split(lines[0], ",")
	require.Len(t, parts, 3)
	require.Equal(t, "admin", parts[0])
	require.Equal(t, "Owner", parts[2])
	require.True(t, Verify("admin123", parts[1]))
}

func TestAppendAccount_SkipsDuplicateHandle(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, AppendAccount(dir, "admin", "first", "Owner"))
	require.NoError(t, AppendAccount(dir, "admin", "second", "ReadOnly"))

	data, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1)
}

func TestAppendAccount_DuplicateIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, AppendAccount(dir, "admin", "p1", "Owner"))
	require.NoError(t, AppendAccount(dir, "Admin", "p2", "Owner"))

	data, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)
}

func TestAppendAccount_RejectsEmptyFields(t *testing.T) {
	dir := t.TempDir()

	require.ErrorIs(t, AppendAccount(dir, "", "pw", "Owner"), ErrValidation)
	require.ErrorIs(t, AppendAccount(dir, "handle", "", "Owner"), ErrValidation)
	require.ErrorIs(t, AppendAccount(dir, "handle", "pw", "  "), ErrValidation)

	_, err := os.Stat(filepath.Join(dir, UsersFile))
	require.True(t, os.IsNotExist(err), "no file written on validation failure")
}
