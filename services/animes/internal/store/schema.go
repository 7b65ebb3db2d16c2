package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS anime (
		id   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL CHECK (name <> '')
	)`,
	`CREATE INDEX IF NOT EXISTS anime_name_idx ON anime (name)`,
	`CREATE TABLE IF NOT EXISTS users (
		id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		username    TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		authorities TEXT NOT NULL DEFAULT ''
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS anime (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL CHECK (name <> '')
	)`,
	`CREATE INDEX IF NOT EXISTS anime_name_idx ON anime (name)`,
	`CREATE TABLE IF NOT EXISTS users (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL DEFAULT '',
		username    TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		authorities TEXT NOT NULL DEFAULT ''
	)`,
}

// EnsurePostgresSchema creates the anime and users tables when missing.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

// EnsureSQLiteSchema is the SQLite counterpart of EnsurePostgresSchema.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
