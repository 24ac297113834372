package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all tables. Each statement uses IF NOT EXISTS
// for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		config      TEXT NOT NULL,
		zones       INTEGER NOT NULL DEFAULT 0,
		iterations  INTEGER NOT NULL DEFAULT 0,
		final_time  REAL NOT NULL DEFAULT 0,
		started_at  TEXT NOT NULL,
		finished_at TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS checkpoints (
		run_id     TEXT NOT NULL,
		number     INTEGER NOT NULL,
		iteration  INTEGER NOT NULL,
		time       REAL NOT NULL,
		path       TEXT NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		PRIMARY KEY (run_id, number)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checkpoints_run_id ON checkpoints(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
