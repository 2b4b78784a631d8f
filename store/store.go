// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: SQLite-backed store for named layout snapshots.
// Usage: Persists serialized layouts under user-chosen names.

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const layoutSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS layouts (
    name     TEXT PRIMARY KEY,
    data     BLOB NOT NULL,
    saved_at INTEGER NOT NULL
);
`

const layoutSchemaVersion = 1

// Store keeps named layout snapshots in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens a layout database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with pragmas for performance and concurrency
	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(layoutSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO schema_version(version) VALUES (?)`, layoutSchemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to stamp schema version: %w", err)
	}
	return &Store{db: db}, nil
}

// Put saves or replaces a named layout.
func (s *Store) Put(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("layout name is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO layouts(name, data, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		name, data, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save layout %q: %w", name, err)
	}
	return nil
}

// Get loads a named layout. The boolean reports whether it exists.
func (s *Store) Get(name string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM layouts WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load layout %q: %w", name, err)
	}
	return data, true, nil
}

// LayoutInfo describes one saved layout.
type LayoutInfo struct {
	Name    string
	SavedAt time.Time
}

// List returns the saved layouts, most recent first.
func (s *Store) List() ([]LayoutInfo, error) {
	rows, err := s.db.Query(`SELECT name, saved_at FROM layouts ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var out []LayoutInfo
	for rows.Next() {
		var name string
		var ns int64
		if err := rows.Scan(&name, &ns); err != nil {
			return nil, fmt.Errorf("failed to scan layout row: %w", err)
		}
		out = append(out, LayoutInfo{Name: name, SavedAt: time.Unix(0, ns)})
	}
	return out, rows.Err()
}

// Delete removes a named layout. Deleting a missing name is not an error.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM layouts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete layout %q: %w", name, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
