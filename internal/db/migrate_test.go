package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, DialectSQLite))
	require.NoError(t, Migrate(db, DialectSQLite))
}

func TestMigrate_CreatesSnapshotsTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, "snapshots").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "snapshots", name)
}

func TestMigrate_SnapshotKeyIsPrimaryKey(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO snapshots (key, value, updated_at) VALUES ('pension-data', '[]', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO snapshots (key, value, updated_at) VALUES ('pension-data', '[]', '2025-01-02T00:00:00Z')`)
	assert.Error(t, err, "duplicate key should violate primary key")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pensionbook.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestDialect_Placeholder(t *testing.T) {
	assert.Equal(t, "?", DialectSQLite.Placeholder(1))
	assert.Equal(t, "$2", DialectPostgres.Placeholder(2))
}
