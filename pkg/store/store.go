// Package store is the durable gateway for canvases, nodes, and notes.
//
// The store wraps a single SQLite database. Each process opens its own
// [Store] and is the sole reader/writer of that handle; concurrent
// processes coordinate through row-level upserts and the schema's unique
// constraints rather than a lock protocol, which is acceptable at
// interactive edit rates.
//
// Not-found is modeled as a nil result, not an error, except where an
// operation requires the canvas to exist (adding a node), in which case it
// fails with [ErrCanvasNotFound].
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Sentinel errors for gateway operations.
var (
	// ErrTemplateNotFound is returned when a canvas references an unknown
	// template id at creation time.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrCanvasNotFound is returned when an operation requires a canvas
	// that does not exist.
	ErrCanvasNotFound = errors.New("canvas not found")

	// ErrNodeNotFound is returned when a move targets a node that is not
	// on the canvas.
	ErrNodeNotFound = errors.New("node not found")
)

// Store wraps the SQLite database connection.
type Store struct {
	conn *sql.DB
	rng  *rand.Rand
	now  func() time.Time
}

// Open creates a Store, opening (or creating) the SQLite file at path and
// running migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under interleaved reads and writes.
	conn.SetMaxOpenConns(1)

	s := &Store{
		conn: conn,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  func() time.Time { return time.Now().UTC() },
	}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			metadata TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			color TEXT NOT NULL DEFAULT '#6366f1'
		)`,
		`CREATE TABLE IF NOT EXISTS note_tags (
			note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (note_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS canvases (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			template_id TEXT NOT NULL,
			viewport_x REAL NOT NULL DEFAULT 0,
			viewport_y REAL NOT NULL DEFAULT 0,
			viewport_zoom REAL NOT NULL DEFAULT 1,
			metadata TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS canvas_nodes (
			id TEXT PRIMARY KEY,
			canvas_id TEXT NOT NULL REFERENCES canvases(id) ON DELETE CASCADE,
			content_id TEXT NOT NULL,
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			width REAL NOT NULL DEFAULT 20,
			height REAL NOT NULL DEFAULT 8,
			zone_id TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			style TEXT NOT NULL DEFAULT 'sticky',
			created_at DATETIME NOT NULL,
			UNIQUE(canvas_id, content_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_canvas_nodes_canvas ON canvas_nodes(canvas_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_type ON notes(type)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
