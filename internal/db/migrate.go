package db

import (
	"database/sql"
	"fmt"
)

// Dialect selects SQL placeholder and type syntax.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// Placeholder returns the positional parameter marker for argument n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Migrate runs all schema migrations. Statements are idempotent.
func Migrate(db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations(dialect) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func migrations(dialect Dialect) []string {
	valueType := "TEXT"
	if dialect == DialectPostgres {
		valueType = "JSONB"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		value      ` + valueType + ` NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	}
}
