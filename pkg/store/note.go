package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/bizcanvas/pkg/note"
)

// ErrInvalidNoteType is returned when a note is created with a type
// outside the known set.
var ErrInvalidNoteType = errors.New("invalid note type")

// CreateNote stores a new note and returns it.
func (s *Store) CreateNote(typ note.Type, title, content string, meta note.Metadata) (*note.Note, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidNoteType, typ)
	}

	n := &note.Note{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Content:   content,
		Metadata:  meta,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}

	var rawMeta any
	if !meta.IsZero() {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		rawMeta = string(raw)
	}

	_, err := s.conn.Exec(
		`INSERT INTO notes (id, type, title, content, metadata, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Type), n.Title, n.Content, rawMeta, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

// GetNote returns a note by id, or nil when absent.
func (s *Store) GetNote(id string) (*note.Note, error) {
	return s.scanNote(s.conn.QueryRow(
		`SELECT id, type, title, content, metadata, created_at, updated_at FROM notes WHERE id = ?`, id,
	))
}

// DeleteNote removes a note. Deleting an absent id is not an error.
func (s *Store) DeleteNote(id string) error {
	if _, err := s.conn.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ListNotes returns notes newest first, optionally filtered by type.
// limit <= 0 means a default of 50.
func (s *Store) ListNotes(typ note.Type, limit int) ([]note.Note, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, type, title, content, metadata, created_at, updated_at FROM notes`
	args := []any{}
	if typ != "" {
		query += ` WHERE type = ?`
		args = append(args, string(typ))
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	return s.queryNotes(query, args...)
}

// SearchNotes matches the query against note titles and content.
func (s *Store) SearchNotes(query string, limit int) ([]note.Note, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	return s.queryNotes(
		`SELECT id, type, title, content, metadata, created_at, updated_at FROM notes
		 WHERE title LIKE ? OR content LIKE ? ORDER BY created_at DESC LIMIT ?`,
		pattern, pattern, limit,
	)
}

// TagNote attaches a tag to a note, creating the tag on first use.
func (s *Store) TagNote(noteID, tagName string) error {
	var tagID string
	err := s.conn.QueryRow(`SELECT id FROM tags WHERE name = ?`, tagName).Scan(&tagID)
	if err == sql.ErrNoRows {
		tagID = uuid.NewString()
		if _, err := s.conn.Exec(`INSERT INTO tags (id, name) VALUES (?, ?)`, tagID, tagName); err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("lookup tag: %w", err)
	}

	if _, err := s.conn.Exec(
		`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID, tagID,
	); err != nil {
		return fmt.Errorf("tag note: %w", err)
	}
	return nil
}

// NoteTags returns the tag names attached to a note.
func (s *Store) NoteTags(noteID string) ([]string, error) {
	rows, err := s.conn.Query(
		`SELECT t.name FROM tags t JOIN note_tags nt ON nt.tag_id = t.id WHERE nt.note_id = ? ORDER BY t.name`,
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("note tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func (s *Store) queryNotes(query string, args ...any) ([]note.Note, error) {
	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		n, err := s.scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *Store) scanNote(row rowScanner) (*note.Note, error) {
	n := &note.Note{}
	var typ string
	var meta sql.NullString
	err := row.Scan(&n.ID, &typ, &n.Title, &n.Content, &meta, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}
	n.Type = note.Type(typ)

	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &n.Metadata); err != nil {
			return nil, fmt.Errorf("parse note metadata: %w", err)
		}
	}
	return n, nil
}
