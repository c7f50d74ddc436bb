// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"opsCommandCenter/internal/db"
)

// OpenTestDB opens an in-memory SQLite database with the schema applied.
// Caller cleanup is registered automatically. The name keeps parallel tests
// from sharing state: each distinct name is its own database.
func OpenTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so multiple connections within one test see the same DB.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// WriteSeedFile writes one seed file into dir and returns its full path.
func WriteSeedFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file %s: %v", name, err)
	}
	return path
}
