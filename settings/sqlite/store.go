// Package sqlite provides a SQLite-backed settings store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"iconsheet/settings"
	"iconsheet/settings/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store keeps grouped settings in a SQLite database. Values round-trip as
// the types the driver stores natively: int64, float64, string, []byte and
// booleans as 0/1 integers.
type Store struct {
	sqlDB *sql.DB
}

var _ settings.Store = (*Store)(nil)

// Open opens the settings database at path, creating it when missing, and
// applies pending migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("settings database path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open settings database %q: %w", path, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("could not reach settings database %q: %w", path, err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("could not migrate settings database %q: %w", path, err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("settings store is not open")
	}
	return ctx.Err()
}

// ReadGroup returns every entry stored under the named group.
func (s *Store) ReadGroup(ctx context.Context, group string) (map[string]any, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT entry_key, entry_value FROM settings_entries WHERE group_name = ?`, group)
	if err != nil {
		return nil, fmt.Errorf("could not read group %q: %w", group, err)
	}
	defer rows.Close()

	values := make(map[string]any)
	for rows.Next() {
		var key string
		var value any
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("could not read group %q: %w", group, err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read group %q: %w", group, err)
	}
	return values, nil
}

// WriteGroup upserts the given entries under the named group in a single
// transaction. Entries not named in values stay untouched.
func (s *Store) WriteGroup(ctx context.Context, group string, values map[string]any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not write group %q: %w", group, err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO settings_entries (group_name, entry_key, entry_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (group_name, entry_key)
		DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not write group %q: %w", group, err)
	}
	defer stmt.Close()

	now := time.Now().UTC().UnixMilli()
	for key, value := range values {
		if _, err := stmt.ExecContext(ctx, group, key, value, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("could not write group %q key %q: %w", group, key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not write group %q: %w", group, err)
	}
	return nil
}

// Groups returns the names of every stored group, ascending.
func (s *Store) Groups(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT DISTINCT group_name FROM settings_entries ORDER BY group_name`)
	if err != nil {
		return nil, fmt.Errorf("could not list groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("could not list groups: %w", err)
		}
		groups = append(groups, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup drops every entry stored under the named group.
func (s *Store) DeleteGroup(ctx context.Context, group string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM settings_entries WHERE group_name = ?`, group); err != nil {
		return fmt.Errorf("could not delete group %q: %w", group, err)
	}
	return nil
}
