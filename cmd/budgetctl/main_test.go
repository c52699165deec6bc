package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/infra/storage"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sqliteArgs(path string, args ...string) []string {
	return append(args, "--backend", config.BackendSQLite, "--sqlite-path", path)
}

func TestNetPayCommand(t *testing.T) {
	out, err := run(t, "netpay", "40000")
	require.NoError(t, err)
	assert.Contains(t, out, "4383.35")
	assert.Contains(t, out, "33916.65")

	_, err = run(t, "netpay", "abc")
	assert.Error(t, err)

	_, err = run(t, "netpay")
	assert.Error(t, err)
}

func TestNetPayWithScheduleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
sha_rate = "0"
housing_levy_rate = "0"
personal_relief = "0"

[[brackets]]
rate = "0.5"
`), 0o600))

	out, err := run(t, "netpay", "1000", "--tax-schedule", path)
	require.NoError(t, err)
	assert.Contains(t, out, "500.00")

	_, err = run(t, "netpay", "1000", "--tax-schedule", filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "reading tax schedule")
}

func TestIncomeSummaryAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")

	out, err := run(t, sqliteArgs(path, "income")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No income saved")

	out, err = run(t, sqliteArgs(path, "income", "set", "40000")...)
	require.NoError(t, err)
	assert.Contains(t, out, "33916.65")

	s, err := storage.Open(&config.Config{
		Storage:  config.StorageConfig{Backend: config.BackendSQLite},
		Database: config.DatabaseConfig{SQLitePath: path},
	})
	require.NoError(t, err)
	category := entity.NewCategory(uuid.New(), "Groceries", decimal.NewFromInt(5000))
	_, err = s.Store.CreateCategory(context.Background(), &category)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out, err = run(t, sqliteArgs(path, "summary")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Net pay:          33916.65")
	assert.Contains(t, out, "Remaining budget: 28916.65")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "on_track")

	out, err = run(t, sqliteArgs(path, "check")...)
	require.NoError(t, err)
	assert.Contains(t, out, "storage: sqlite connected")
	assert.Contains(t, out, "ledger: 1 categories, 0 expenses")
	assert.Contains(t, out, "ledger: consistent")
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, "check", "--backend", "mongo")
	assert.ErrorContains(t, err, "unknown storage backend")
}
