// Package seed bulk-loads demo data into the store from a seed directory:
//
//	users.txt        handle,pass_hash,access_level (one per line)
//	sec_events.csv   header-delimited, columns named after sec_events fields
//	data_assets.csv  likewise for data_assets
//	it_requests.csv  likewise for it_requests
//
// Loading is idempotent: rows whose unique key already exists are skipped,
// so running the loader twice yields the same row set as running it once.
// Missing files mean zero rows, not an error; malformed lines are skipped.
package seed

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"opsCommandCenter/internal/credentials"
	"opsCommandCenter/internal/db"
	"opsCommandCenter/models"
	"opsCommandCenter/repository"
)

// Seed file names inside the seed directory.
const (
	EventsFile   = "sec_events.csv"
	AssetsFile   = "data_assets.csv"
	RequestsFile = "it_requests.csv"
)

// Loader reads seed files and inserts rows through the entity repositories.
type Loader struct {
	store    *db.Store
	accounts *repository.AccountRepository
	events   *repository.Repository[models.SecurityEvent]
	assets   *repository.Repository[models.DataAsset]
	requests *repository.Repository[models.ITRequest]
}

func NewLoader(store *db.Store) *Loader {
	return &Loader{
		store:    store,
		accounts: repository.NewAccountRepository(store),
		events:   repository.NewEventRepository(store),
		assets:   repository.NewAssetRepository(store),
		requests: repository.NewRequestRepository(store),
	}
}

// LoadAll loads every seed file under dir in one transactional scope: either
// the whole batch commits or none of it does.
func (l *Loader) LoadAll(ctx context.Context, dir string) error {
	return l.store.WithTx(ctx, func(tx *sql.Tx) error {
		if err := l.loadAccounts(ctx, tx, filepath.Join(dir, credentials.UsersFile)); err != nil {
			return err
		}
		if err := l.loadEvents(ctx, tx, filepath.Join(dir, EventsFile)); err != nil {
			return err
		}
		if err := l.loadAssets(ctx, tx, filepath.Join(dir, AssetsFile)); err != nil {
			return err
		}
		return l.loadRequests(ctx, tx, filepath.Join(dir, RequestsFile))
	})
}

// EnsureDefaultAccounts writes three demo accounts to users.txt when the
// file does not exist yet. Existing files are left alone so operator-added
// accounts survive reseeding.
func EnsureDefaultAccounts(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, credentials.UsersFile)); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	for _, acct := range [][3]string{
		{"admin", "admin123", "Owner"},
		{"analyst", "analyst123", "Analyst"},
		{"viewer", "viewer123", "ReadOnly"},
	} {
		if err := credentials.AppendAccount(dir, acct[0], acct[1], acct[2]); err != nil {
			return err
		}
	}
	return nil
}

// loadAccounts reads the line-oriented credential file. Lines without
// exactly three comma-separated fields are skipped.
func (l *Loader) loadAccounts(ctx context.Context, tx *sql.Tx, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			slog.Debug("skipping malformed credential line", "fields", len(parts))
			continue
		}
		a := &models.Account{
			Handle:      strings.TrimSpace(parts[0]),
			PassHash:    strings.TrimSpace(parts[1]),
			AccessLevel: strings.TrimSpace(parts[2]),
		}
		if err := l.accounts.InsertIgnoreTx(ctx, tx, a); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (l *Loader) loadEvents(ctx context.Context, tx *sql.Tx, path string) error {
	return eachRecord(path, func(rec map[string]string) error {
		e := &models.SecurityEvent{
			EventKey:  rec["event_key"],
			EventKind: rec["event_kind"],
			Impact:    models.Impact(rec["impact"]),
			State:     models.EventState(rec["state"]),
			RaisedAt:  rec["raised_at"],
			ClearedAt: optional(rec["cleared_at"]),
			Owner:     rec["owner"],
			Notes:     rec["notes"],
		}
		return l.events.InsertIgnoreTx(ctx, tx, e)
	})
}

func (l *Loader) loadAssets(ctx context.Context, tx *sql.Tx, path string) error {
	return eachRecord(path, func(rec map[string]string) error {
		size, err := strconv.ParseFloat(rec["size_mb"], 64)
		if err != nil {
			slog.Debug("skipping asset row with bad size_mb", "asset", rec["asset_name"])
			return nil
		}
		rows, err := strconv.ParseInt(rec["rows_est"], 10, 64)
		if err != nil {
			slog.Debug("skipping asset row with bad rows_est", "asset", rec["asset_name"])
			return nil
		}
		a := &models.DataAsset{
			AssetName: rec["asset_name"],
			Steward:   rec["steward"],
			Origin:    rec["origin"],
			SizeMB:    size,
			RowsEst:   rows,
			CreatedOn: rec["created_on"],
		}
		return l.assets.InsertIgnoreTx(ctx, tx, a)
	})
}

func (l *Loader) loadRequests(ctx context.Context, tx *sql.Tx, path string) error {
	return eachRecord(path, func(rec map[string]string) error {
		r := &models.ITRequest{
			ReqKey:   rec["req_key"],
			Topic:    rec["topic"],
			Urgency:  models.Urgency(rec["urgency"]),
			Phase:    models.RequestPhase(rec["phase"]),
			OpenedAt: rec["opened_at"],
			ClosedAt: optional(rec["closed_at"]),
			Assignee: rec["assignee"],
		}
		return l.requests.InsertIgnoreTx(ctx, tx, r)
	})
}

// eachRecord streams a header-delimited CSV, invoking fn with a column-name
// keyed map per data row. A missing file yields zero rows; rows whose field
// count does not match the header are skipped.
func eachRecord(path string, fn func(map[string]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if len(row) != len(header) {
			slog.Debug("skipping malformed seed row", "file", filepath.Base(path), "fields", len(row))
			continue
		}
		rec := make(map[string]string, len(header))
		for i, col := range header {
			rec[col] = strings.TrimSpace(row[i])
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// optional maps "" to a SQL NULL pointer.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
