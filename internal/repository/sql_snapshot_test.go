package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/pensionbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "pension-data"

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		conn.Close()
	})
	return conn, mock
}

func TestSQLiteSnapshotStore_LoadMissing(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))

	_, err := store.Load(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSnapshotStore_SaveThenLoad(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testKey, []byte(`[{"id":"a"}]`)))
	got, err := store.Load(ctx, testKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(got))
}

func TestSQLiteSnapshotStore_SaveReplaces(t *testing.T) {
	conn := testutil.NewTestDB(t)
	store := NewSQLiteSnapshotStore(conn)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testKey, []byte(`[1]`)))
	require.NoError(t, store.Save(ctx, testKey, []byte(`[2]`)))

	got, err := store.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	var rows int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteSnapshotStore_KeysAreIndependent(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", []byte(`"a"`)))
	_, err := store.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSnapshotStore_Load(t *testing.T) {
	conn, mock := newMockDB(t)
	store := NewPostgresSnapshotStore(conn)

	mock.ExpectQuery(`SELECT value FROM snapshots WHERE key = \$1`).
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	got, err := store.Load(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestPostgresSnapshotStore_LoadNoRows(t *testing.T) {
	conn, mock := newMockDB(t)
	store := NewPostgresSnapshotStore(conn)

	mock.ExpectQuery(`SELECT value FROM snapshots`).
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := store.Load(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSnapshotStore_LoadError(t *testing.T) {
	conn, mock := newMockDB(t)
	store := NewPostgresSnapshotStore(conn)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT value FROM snapshots`).WithArgs(testKey).WillReturnError(boom)

	_, err := store.Load(context.Background(), testKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPostgresSnapshotStore_SaveUpserts(t *testing.T) {
	conn, mock := newMockDB(t)
	store := NewPostgresSnapshotStore(conn)

	mock.ExpectExec(`INSERT INTO snapshots \(key, value, updated_at\) VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(testKey, `[{"year":2024}]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), testKey, []byte(`[{"year":2024}]`)))
}

func TestPostgresSnapshotStore_SaveError(t *testing.T) {
	conn, mock := newMockDB(t)
	store := NewPostgresSnapshotStore(conn)

	mock.ExpectExec(`INSERT INTO snapshots`).WillReturnError(errors.New("disk full"))

	err := store.Save(context.Background(), testKey, []byte(`[]`))
	assert.ErrorContains(t, err, "disk full")
}
