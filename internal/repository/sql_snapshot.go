package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pensionbook/internal/db"
)

// SQLSnapshotStore implements SnapshotStore on the snapshots table of a
// SQLite or Postgres database.
type SQLSnapshotStore struct {
	db      db.DBTX
	dialect db.Dialect
}

// NewSQLiteSnapshotStore creates a SnapshotStore backed by SQLite.
func NewSQLiteSnapshotStore(conn db.DBTX) *SQLSnapshotStore {
	return &SQLSnapshotStore{db: conn, dialect: db.DialectSQLite}
}

// NewPostgresSnapshotStore creates a SnapshotStore backed by Postgres.
func NewPostgresSnapshotStore(conn db.DBTX) *SQLSnapshotStore {
	return &SQLSnapshotStore{db: conn, dialect: db.DialectPostgres}
}

func (r *SQLSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM snapshots WHERE key = ` + r.dialect.Placeholder(1)

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *SQLSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	p := r.dialect.Placeholder
	query := `INSERT INTO snapshots (key, value, updated_at) VALUES (` + p(1) + `, ` + p(2) + `, ` + p(3) + `)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, string(data), nowUTC())
	if err != nil {
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	return nil
}
