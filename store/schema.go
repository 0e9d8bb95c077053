package store

import (
	"context"
	"fmt"
)

// CreateSchema creates all tables needed by the store.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements are portable between SQLite and PostgreSQL.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS project (
    name TEXT PRIMARY KEY,
    camera_type TEXT NOT NULL DEFAULT 'back',
    flash_mode TEXT NOT NULL DEFAULT 'off',
    show_grid BOOLEAN NOT NULL DEFAULT TRUE,
    center_x INTEGER NOT NULL DEFAULT 50,
    center_y INTEGER NOT NULL DEFAULT 50,
    eyes_x INTEGER NOT NULL DEFAULT 50,
    eyes_y INTEGER NOT NULL DEFAULT 40,
    mouth_x INTEGER NOT NULL DEFAULT 50,
    mouth_y INTEGER NOT NULL DEFAULT 70,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS photo (
    project_name TEXT NOT NULL REFERENCES project(name) ON DELETE CASCADE,
    date_key TEXT NOT NULL,
    uri TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (project_name, date_key)
)`,
	`CREATE INDEX IF NOT EXISTS idx_photo_project ON photo(project_name)`,
}
