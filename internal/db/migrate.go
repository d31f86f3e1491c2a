package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS app_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		day      TEXT PRIMARY KEY,
		position INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS timelines (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		position        INTEGER NOT NULL DEFAULT 0,
		anchor_date     TEXT NOT NULL,
		anchor_phase_id TEXT NOT NULL DEFAULT '',
		anchor_type     TEXT NOT NULL DEFAULT 'start'
		                CHECK(anchor_type IN ('start','end')),
		sort_order      TEXT NOT NULL DEFAULT 'asc'
		                CHECK(sort_order IN ('asc','desc')),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id           TEXT NOT NULL,
		timeline_id  TEXT NOT NULL REFERENCES timelines(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL DEFAULT 0,
		name         TEXT NOT NULL,
		days         INTEGER NOT NULL DEFAULT 1 CHECK(days > 0),
		mode         TEXT NOT NULL DEFAULT 'sequential'
		             CHECK(mode IN ('sequential','parallel')),
		manual_start TEXT,
		manual_end   TEXT,
		PRIMARY KEY (timeline_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_timeline ON phases(timeline_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_timelines_position ON timelines(position)`,
}
