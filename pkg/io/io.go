// Package io provides JSON import and export for canvases.
//
// # Overview
//
// This package enables serialization of a canvas together with its note
// content to and from a single JSON document. The format is designed for:
//
//   - Moving a canvas between machines without a shared relay
//   - Integration with external tools that produce or consume canvas data
//   - Backups that survive database schema changes
//   - Round-trip preservation: export, import, and re-export identically
//
// # JSON Format
//
// The document has two top-level objects:
//
//	{
//	  "canvas": {
//	    "id": "...",
//	    "name": "Q3 strategy",
//	    "templateId": "swot",
//	    "viewport": {"x": 0, "y": 0, "zoom": 1},
//	    "nodes": [...]
//	  },
//	  "notes": [
//	    {"id": "...", "type": "swot_s", "title": "Fast CI"}
//	  ]
//	}
//
// Nodes referencing notes absent from the document import fine; viewers
// fall back to rendering the content id. Unknown template ids import fine
// too, the canvas just loses zones and auto-placement.
package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/note"
)

// Document is the portable JSON form of a canvas and its note content.
type Document struct {
	Canvas canvas.Canvas `json:"canvas"`
	Notes  []note.Note   `json:"notes,omitempty"`
}

// Export writes the document as indented JSON.
func Export(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode canvas document: %w", err)
	}
	return nil
}

// Import reads and validates a document.
func Import(r io.Reader) (Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return d, fmt.Errorf("decode canvas document: %w", err)
	}
	if err := validate(&d); err != nil {
		return d, err
	}
	return d, nil
}

// validate rejects documents that cannot be stored and normalizes the
// rest: the viewport is clamped and missing node styles default.
func validate(d *Document) error {
	if d.Canvas.Name == "" {
		return fmt.Errorf("canvas has no name")
	}
	if d.Canvas.TemplateID == "" {
		return fmt.Errorf("canvas has no template id")
	}

	seen := make(map[string]bool, len(d.Notes))
	for _, n := range d.Notes {
		if n.ID == "" {
			return fmt.Errorf("note %q has no id", n.Title)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate note id %s", n.ID)
		}
		seen[n.ID] = true
		if !n.Type.Valid() {
			return fmt.Errorf("note %s has invalid type %q", n.ID, n.Type)
		}
	}

	nodeSeen := make(map[string]bool, len(d.Canvas.Nodes))
	for i := range d.Canvas.Nodes {
		n := &d.Canvas.Nodes[i]
		if n.ContentID == "" {
			return fmt.Errorf("node %s references no content", n.ID)
		}
		if nodeSeen[n.ContentID] {
			return fmt.Errorf("content %s is placed twice", n.ContentID)
		}
		nodeSeen[n.ContentID] = true
		if !n.Style.Valid() {
			n.Style = canvas.StyleSticky
		}
	}

	d.Canvas.Viewport = d.Canvas.Viewport.Clamp()
	return nil
}
