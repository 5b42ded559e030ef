package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"foodloss-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("JWT_SECRET", "cli-secret")
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateThenCreateAdmin(t *testing.T) {
	useSQLite(t)

	out, err := run("migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migration complete")

	out, err = run("create-admin", "--email", "Admin@Example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "created admin admin@example.com")

	_, err = run("create-admin", "--email", "admin@example.com", "--password", "secret1")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)
}

func TestCreateAdminRejectsShortPassword(t *testing.T) {
	useSQLite(t)

	_, err := run("create-admin", "--email", "admin@example.com", "--password", "123")
	assert.Error(t, err)

	_, err = run("create-admin", "--password", "secret1")
	assert.Error(t, err)
}

func TestSweepExpiredOnEmptyDatabase(t *testing.T) {
	useSQLite(t)

	_, err := run("migrate")
	require.NoError(t, err)

	out, err := run("sweep-expired")
	require.NoError(t, err)
	assert.Contains(t, out, "expired 0 listings, purged 0 revoked tokens")
}

func TestUnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := run("migrate")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
