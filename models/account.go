package models

// Account represents a sign-in account.
// It maps to the `accounts` table in SQLite. PassHash is a bcrypt hash;
// the plaintext password is never stored.
type Account struct {
	ID          int64  `db:"id" json:"id"`
	Handle      string `db:"handle" json:"handle"`
	PassHash    string `db:"pass_hash" json:"-"`
	AccessLevel string `db:"access_level" json:"access_level"`
}
