package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/observability"
)

// CreateCanvas creates a new canvas from a template. The canvas starts at
// viewport (0,0,1) with no nodes. Unknown template ids fail with
// [ErrTemplateNotFound].
func (s *Store) CreateCanvas(name, templateID string, metadata map[string]string) (*canvas.Canvas, error) {
	if _, ok := canvas.Get(templateID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}

	c := &canvas.Canvas{
		ID:         uuid.NewString(),
		Name:       name,
		TemplateID: templateID,
		Viewport:   canvas.DefaultViewport(),
		Metadata:   metadata,
		CreatedAt:  s.now(),
		UpdatedAt:  s.now(),
	}

	var meta any
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		meta = string(raw)
	}

	_, err := s.conn.Exec(
		`INSERT INTO canvases (id, name, template_id, viewport_x, viewport_y, viewport_zoom, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.TemplateID, c.Viewport.X, c.Viewport.Y, c.Viewport.Zoom, meta, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert canvas: %w", err)
	}
	observability.Store().OnCanvasCreated(context.Background(), templateID)
	return c, nil
}

// GetCanvas returns the canvas with its nodes, or nil when the id is
// unknown. A nil result is a valid outcome, not an error.
func (s *Store) GetCanvas(id string) (*canvas.Canvas, error) {
	c, err := s.scanCanvas(s.conn.QueryRow(
		`SELECT id, name, template_id, viewport_x, viewport_y, viewport_zoom, metadata, created_at, updated_at
		 FROM canvases WHERE id = ?`, id,
	))
	if err != nil || c == nil {
		return c, err
	}

	nodes, err := s.canvasNodes(id)
	if err != nil {
		return nil, err
	}
	c.Nodes = nodes
	return c, nil
}

// ListCanvases returns canvases sorted by updated_at descending. Node lists
// are omitted; callers that need nodes fetch a single canvas. templateID
// filters the result when non-empty.
func (s *Store) ListCanvases(templateID string) ([]canvas.Canvas, error) {
	query := `SELECT id, name, template_id, viewport_x, viewport_y, viewport_zoom, metadata, created_at, updated_at
	          FROM canvases`
	args := []any{}
	if templateID != "" {
		query += ` WHERE template_id = ?`
		args = append(args, templateID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list canvases: %w", err)
	}
	defer rows.Close()

	var out []canvas.Canvas
	for rows.Next() {
		c, err := s.scanCanvas(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// AddNode places a content item on a canvas. When pos is nil a
// pseudo-random position inside the template's nominal bounds is chosen.
// The pair (canvas, content id) is unique: re-adding an existing content
// item updates its position, zone, and color instead of duplicating it.
func (s *Store) AddNode(canvasID, contentID string, pos *canvas.Position, zoneID string, size *canvas.Size, color string) (*canvas.Node, error) {
	c, err := s.GetCanvas(canvasID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCanvasNotFound, canvasID)
	}

	if pos == nil {
		tmpl, ok := c.Template()
		if !ok {
			tmpl = canvas.Template{DefaultSize: canvas.Size{Width: 100, Height: 40}}
		}
		p := tmpl.RandomPosition(s.rng)
		pos = &p
	}
	if size == nil {
		size = &canvas.Size{Width: canvas.DefaultNodeWidth, Height: canvas.DefaultNodeHeight}
	}

	id := uuid.NewString()
	_, err = s.conn.Exec(
		`INSERT INTO canvas_nodes (id, canvas_id, content_id, x, y, width, height, zone_id, color, style, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(canvas_id, content_id) DO UPDATE SET
		   x = excluded.x, y = excluded.y, zone_id = excluded.zone_id, color = excluded.color`,
		id, canvasID, contentID, pos.X, pos.Y, size.Width, size.Height, zoneID, color, string(canvas.StyleSticky), s.now(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert node: %w", err)
	}

	if err := s.touchCanvas(canvasID); err != nil {
		return nil, err
	}

	// Re-read the row: on conflict the original id and style survive.
	node := &canvas.Node{}
	var zone, col, style sql.NullString
	err = s.conn.QueryRow(
		`SELECT id, content_id, x, y, width, height, zone_id, color, style, created_at
		 FROM canvas_nodes WHERE canvas_id = ? AND content_id = ?`,
		canvasID, contentID,
	).Scan(&node.ID, &node.ContentID, &node.Position.X, &node.Position.Y,
		&node.Size.Width, &node.Size.Height, &zone, &col, &style, &node.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("read node: %w", err)
	}
	node.ZoneID = zone.String
	node.Color = col.String
	node.Style = canvas.Style(style.String)
	return node, nil
}

// MoveNode repositions a node on the canvas.
func (s *Store) MoveNode(canvasID, nodeID string, pos canvas.Position) error {
	res, err := s.conn.Exec(
		`UPDATE canvas_nodes SET x = ?, y = ? WHERE id = ? AND canvas_id = ?`,
		pos.X, pos.Y, nodeID, canvasID,
	)
	if err != nil {
		return fmt.Errorf("move node: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	return s.touchCanvas(canvasID)
}

// RemoveNode removes a node from a canvas. Removing an absent node is not
// an error.
func (s *Store) RemoveNode(canvasID, nodeID string) error {
	if _, err := s.conn.Exec(
		`DELETE FROM canvas_nodes WHERE id = ? AND canvas_id = ?`, nodeID, canvasID,
	); err != nil {
		return fmt.Errorf("remove node: %w", err)
	}
	return s.touchCanvas(canvasID)
}

// UpdateViewport stores the clamped viewport and bumps updated_at.
func (s *Store) UpdateViewport(canvasID string, v canvas.Viewport) error {
	v = v.Clamp()
	_, err := s.conn.Exec(
		`UPDATE canvases SET viewport_x = ?, viewport_y = ?, viewport_zoom = ?, updated_at = ? WHERE id = ?`,
		v.X, v.Y, v.Zoom, s.now(), canvasID,
	)
	if err != nil {
		return fmt.Errorf("update viewport: %w", err)
	}
	return nil
}

// DeleteCanvas deletes a canvas and cascades to its nodes. Deleting a
// nonexistent id is not an error.
func (s *Store) DeleteCanvas(canvasID string) error {
	if _, err := s.conn.Exec(`DELETE FROM canvases WHERE id = ?`, canvasID); err != nil {
		return fmt.Errorf("delete canvas: %w", err)
	}
	return nil
}

// touchCanvas bumps the canvas's updated_at so polling viewers notice the
// mutation.
func (s *Store) touchCanvas(canvasID string) error {
	if _, err := s.conn.Exec(
		`UPDATE canvases SET updated_at = ? WHERE id = ?`, s.now(), canvasID,
	); err != nil {
		return fmt.Errorf("touch canvas: %w", err)
	}
	observability.Store().OnCanvasMutated(context.Background(), canvasID)
	return nil
}

func (s *Store) canvasNodes(canvasID string) ([]canvas.Node, error) {
	rows, err := s.conn.Query(
		`SELECT id, content_id, x, y, width, height, zone_id, color, style, created_at
		 FROM canvas_nodes WHERE canvas_id = ? ORDER BY created_at, id`, canvasID,
	)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	var nodes []canvas.Node
	for rows.Next() {
		var n canvas.Node
		var zone, col, style sql.NullString
		if err := rows.Scan(&n.ID, &n.ContentID, &n.Position.X, &n.Position.Y,
			&n.Size.Width, &n.Size.Height, &zone, &col, &style, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.ZoneID = zone.String
		n.Color = col.String
		n.Style = canvas.Style(style.String)
		if n.Style == "" {
			n.Style = canvas.StyleSticky
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// rowScanner lets scanCanvas work with both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanCanvas(row rowScanner) (*canvas.Canvas, error) {
	c := &canvas.Canvas{}
	var meta sql.NullString
	var created, updated time.Time
	err := row.Scan(&c.ID, &c.Name, &c.TemplateID,
		&c.Viewport.X, &c.Viewport.Y, &c.Viewport.Zoom,
		&meta, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan canvas: %w", err)
	}
	c.CreatedAt, c.UpdatedAt = created, updated

	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &c.Metadata); err != nil {
			return nil, fmt.Errorf("parse canvas metadata: %w", err)
		}
	}
	return c, nil
}
