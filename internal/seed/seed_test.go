package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"opsCommandCenter/internal/credentials"
	"opsCommandCenter/internal/db"
	"opsCommandCenter/internal/testutil"
	"opsCommandCenter/repository"
)

const eventsCSV = `event_key,event_kind,impact,state,raised_at,cleared_at,owner,notes
SEC-1,Phishing,High,Open,2025-12-12,,Analyst1,reported by finance
SEC-2,Malware,Critical,In Progress,2025-12-13,,Analyst2,
`

const assetsCSV = `asset_name,steward,origin,size_mb,rows_est,created_on
customers_raw,dana,crm,120.5,50000,2025-02-01
billing_curated,omar,erp,42.0,9000,2025-03-01
`

const requestsCSV = `req_key,topic,urgency,phase,opened_at,closed_at,assignee
REQ-1,VPN access,Low,Open,2025-04-01,,it1
REQ-2,Laptop swap,Critical,Closed,2025-04-03,2025-04-05,it2
`

func seedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteSeedFile(t, dir, EventsFile, eventsCSV)
	testutil.WriteSeedFile(t, dir, AssetsFile, assetsCSV)
	testutil.WriteSeedFile(t, dir, RequestsFile, requestsCSV)
	testutil.WriteSeedFile(t, dir, credentials.UsersFile, "admin,$2a$10$notarealhashnotarealhashnotarealhash,Owner\n")
	return dir
}

func TestLoadAll_LoadsEverySeedFile(t *testing.T) {
	store := db.NewStore(testutil.OpenTestDB(t, "seed_all"))
	dir := seedDir(t)

	require.NoError(t, NewLoader(store).LoadAll(context.Background(), dir))

	ctx := context.Background()
	events, err := repository.NewEventRepository(store).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "SEC-2", events[0].EventKey, "ordered newest raised first")
	require.Nil(t, events[0].ClearedAt)

	assets, err := repository.NewAssetRepository(store).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	requests, err := repository.NewRequestRepository(store).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	require.NotNil(t, requests[0].ClosedAt)

	n, err := repository.NewAccountRepository(store).Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestLoadAll_IsIdempotent(t *testing.T) {
	store := db.NewStore(testutil.OpenTestDB(t, "seed_twice"))
	dir := seedDir(t)
	loader := NewLoader(store)
	ctx := context.Background()

	require.NoError(t, loader.LoadAll(ctx, dir))
	require.NoError(t, loader.LoadAll(ctx, dir))

	events, err := repository.NewEventRepository(store).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2, "second load adds nothing")

	assets, err := repository.NewAssetRepository(store).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
}

func TestLoadAll_MissingFilesMeanZeroRows(t *testing.T) {
	store := db.NewStore(testutil.OpenTestDB(t, "seed_missing"))

	require.NoError(t, NewLoader(store).LoadAll(context.Background(), t.TempDir()))

	events, err := repository.NewEventRepository(store).ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestLoadAll_SkipsMalformedLines(t *testing.T) {
	store := db.NewStore(testutil.OpenTestDB(t, "seed_malformed"))
	dir := t.TempDir()
	testutil.WriteSeedFile(t, dir, credentials.UsersFile,
		"admin,hash,Owner\njust-a-handle\nanalyst,hash,Analyst,extra-field\n\nviewer,hash,ReadOnly\n")
	testutil.WriteSeedFile(t, dir, AssetsFile,
		"asset_name,steward,origin,size_mb,rows_est,created_on\ngood,dana,crm,1.5,10,2025-01-01\nbad_size,dana,crm,not-a-number,10,2025-01-01\n")

	require.NoError(t, NewLoader(store).LoadAll(context.Background(), dir))

	ctx := context.Background()
	n, err := repository.NewAccountRepository(store).Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n, "only the two well-formed credential lines load")

	assets, err := repository.NewAssetRepository(store).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	require.Equal(t, "good", assets[0].AssetName)
}

func TestEnsureDefaultAccounts(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, EnsureDefaultAccounts(dir))

	data, err := os.ReadFile(filepath.Join(dir, credentials.UsersFile))
	require.NoError(t, err)
	require.Contains(t, string(data), "admin,")
	require.Contains(t, string(data), "analyst,")
	require.Contains(t, string(data), "viewer,")

	// Existing file is left alone.
	require.NoError(t, os.WriteFile(filepath.Join(dir, credentials.UsersFile), []byte("custom,hash,Owner\n"), 0o600))
	require.NoError(t, EnsureDefaultAccounts(dir))
	data, err = os.ReadFile(filepath.Join(dir, credentials.UsersFile))
	require.NoError(t, err)
	require.Equal(t, "custom,hash,Owner\n", string(data))
}
