package repository

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrDuplicateKey reports an explicit insert whose unique key already exists.
// Callers treat it as a recoverable validation failure and re-prompt; the
// existing row is left untouched.
var ErrDuplicateKey = errors.New("duplicate unique key")

// isUniqueViolation reports whether err is a SQLite unique/primary-key
// constraint failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
