package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for the results database.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		label      TEXT NOT NULL DEFAULT '',
		policy     TEXT NOT NULL,
		quantum    INTEGER NOT NULL DEFAULT 0,
		end_time   INTEGER NOT NULL,
		processes  TEXT NOT NULL,
		slices     TEXT NOT NULL,
		summary    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
