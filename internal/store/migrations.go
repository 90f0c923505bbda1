package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for the results tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS benchmarks (
		id         TEXT PRIMARY KEY,
		platform   TEXT NOT NULL DEFAULT '',
		cpu        TEXT NOT NULL DEFAULT '',
		cores      INTEGER NOT NULL DEFAULT 0,
		ram        TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bench_records (
		benchmark_id     TEXT NOT NULL REFERENCES benchmarks(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL,
		algo             TEXT NOT NULL,
		jobs             INTEGER NOT NULL,
		machines         INTEGER NOT NULL,
		runs             INTEGER NOT NULL,
		lower_bound      INTEGER NOT NULL,
		time_best_ms     REAL NOT NULL,
		time_mean_ms     REAL NOT NULL,
		time_std_ms      REAL NOT NULL,
		makespan_best    INTEGER NOT NULL,
		makespan_mean    REAL NOT NULL,
		makespan_std     REAL NOT NULL,
		evaluations_mean REAL NOT NULL,
		PRIMARY KEY (benchmark_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS solves (
		id          TEXT PRIMARY KEY,
		instance    TEXT NOT NULL,
		jobs        INTEGER NOT NULL,
		machines    INTEGER NOT NULL,
		seed        INTEGER NOT NULL,
		makespan    INTEGER NOT NULL,
		permutation TEXT NOT NULL,
		generations INTEGER NOT NULL,
		evaluations INTEGER NOT NULL,
		duration_ms REAL NOT NULL,
		config      TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_solves_instance ON solves(instance)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
