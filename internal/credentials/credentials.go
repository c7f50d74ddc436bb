// Package credentials creates and verifies bcrypt password hashes and
// maintains the flat users.txt file that seeds the accounts table.
//
// File format, one account per line:
//
//	handle,pass_hash,access_level
//
// There is no escaping of embedded commas; malformed lines are skipped by
// the seed loader.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// UsersFile is the credential file name inside the seed directory.
const UsersFile = "users.txt"

// ErrValidation reports an empty required field on account creation.
var ErrValidation = errors.New("handle, password, and access level are required")

// Hash produces a salted bcrypt hash of the password. Two calls on the same
// input yield different strings; both verify.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches the stored bcrypt hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AppendAccount hashes the password and appends one credential line to
// users.txt under dir, creating the directory if needed. If the handle
// already appears in the file (case-sensitive exact match on the first
// field) the call silently does nothing. Empty fields fail with
// ErrValidation.
func AppendAccount(dir, handle, password, accessLevel string) error {
	handle = strings.TrimSpace(handle)
	accessLevel = strings.TrimSpace(accessLevel)
	if handle == "" || password == "" || accessLevel == "" {
		return ErrValidation
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, UsersFile)
	exists, err := handleExists(path, handle)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := Hash(password)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s,%s,%s\n", handle, hash, accessLevel); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// handleExists scans the credential file for a line whose first field is
// handle. A missing file means no handles at all.
func handleExists(path, handle string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		parts := strings.Split(strings.TrimSpace(sc.Text()), ",")
		if len(parts) >= 1 && strings.TrimSpace(parts[0]) == handle {
			return true, nil
		}
	}
	return false, sc.Err()
}
