package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) a local SQLite database file and ensures the
// schema exists. The parent directory is created if absent, so a fresh
// checkout can point at e.g. seed/ops_command_center.sqlite3 and just run.
// Safe to call on every process start; existing tables and rows are never
// dropped or altered.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "app.db"
	}
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// Pragmas for robustness
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if err := EnsureSchema(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// Table creation statements for the four entities. Each table carries an
// auto-incrementing numeric identity plus a unique operator-facing key.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        handle TEXT UNIQUE NOT NULL,
        pass_hash TEXT NOT NULL,
        access_level TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS sec_events (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        event_key TEXT UNIQUE NOT NULL,
        event_kind TEXT NOT NULL,
        impact TEXT NOT NULL,
        state TEXT NOT NULL,
        raised_at TEXT NOT NULL,
        cleared_at TEXT,
        owner TEXT NOT NULL,
        notes TEXT
    )`,
	`CREATE TABLE IF NOT EXISTS data_assets (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        asset_name TEXT UNIQUE NOT NULL,
        steward TEXT NOT NULL,
        origin TEXT NOT NULL,
        size_mb REAL NOT NULL CHECK (size_mb >= 0),
        rows_est INTEGER NOT NULL CHECK (rows_est >= 0),
        created_on TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS it_requests (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        req_key TEXT UNIQUE NOT NULL,
        topic TEXT NOT NULL,
        urgency TEXT NOT NULL,
        phase TEXT NOT NULL,
        opened_at TEXT NOT NULL,
        closed_at TEXT,
        assignee TEXT NOT NULL
    )`,
}

// EnsureSchema idempotently creates the accounts, sec_events, data_assets,
// and it_requests tables. Called by Open; exposed separately so tests and
// the seeder can run it against an already open handle.
func EnsureSchema(d *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := d.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
