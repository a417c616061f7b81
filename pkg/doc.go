// Package pkg provides the core libraries for the bizcanvas spatial canvas.
//
// # Overview
//
// bizcanvas organizes structured notes on template-driven canvases (SWOT,
// business model, personas) rendered in the terminal. The pkg directory is
// organized into a few main areas:
//
//  1. [note] - Typed note content (types, metadata payloads, tags)
//  2. [canvas] - Templates, zones, viewport math, auto-placement
//  3. [view] - Terminal projection of a canvas to a character frame
//  4. [store] - SQLite persistence for notes and canvases
//  5. [collab] / [relay] - Realtime multi-agent replication
//
// # Architecture
//
// The typical data flow:
//
//	note content
//	     ↓
//	[store] (persist notes, canvases, placements)
//	     ↓
//	[canvas] (templates, zones, viewport, auto-placement)
//	     ↓
//	[view] (project world coordinates to a terminal frame)
//
// For shared canvases the [collab] client keeps a local replica converged
// with every other participant through a [relay] server; the relay fans out
// operations and persists room snapshots.
//
// # Quick Start
//
// Create a canvas, place a note, render a frame:
//
//	import (
//	    "github.com/matzehuels/bizcanvas/pkg/canvas"
//	    "github.com/matzehuels/bizcanvas/pkg/note"
//	    "github.com/matzehuels/bizcanvas/pkg/store"
//	    "github.com/matzehuels/bizcanvas/pkg/view"
//	)
//
//	s, _ := store.Open("canvas.db")
//	defer s.Close()
//
//	n, _ := s.CreateNote(note.TypeIdea, "Ship it", "", note.Metadata{})
//	c, _ := s.CreateCanvas("Q3 strategy", "swot", nil)
//	s.AddNode(c.ID, n.ID, nil, "s", nil, "")
//
//	c, _ = s.GetCanvas(c.ID)
//	tmpl, _ := canvas.Get(c.TemplateID)
//	titles := map[string]string{n.ID: n.Title}
//	lines := view.Frame(c, tmpl, titles, 100, 30)
//
// # Main Packages
//
// [note] - Note content: eight typed variants with per-type icons and
// structured metadata (personas carry role, quote, goals).
//
// [canvas] - The spatial model: registered templates with zones and
// accepted note types, viewport clamping and zoom, pseudo-random and
// zone-aware auto-placement.
//
// [view] - Renders a canvas snapshot into a bordered terminal frame,
// culling nodes outside the viewport.
//
// [store] - SQLite-backed persistence. One database file holds notes,
// canvases, and placements; mutations bump updated_at so polling viewers
// notice.
//
// [collab] - The client side of realtime sharing: a convergent document
// replica, offline edits, reconnection with state exchange, presence.
//
// [relay] - The server side: chi HTTP surface, websocket rooms, pluggable
// room snapshot stores (memory, MongoDB).
//
// [session] - Persistent agent identity (name, color) with file, memory,
// and Redis backends.
//
// [io] - Portable JSON export/import of a canvas together with its notes.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Optional hooks for relay and store events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/canvas/...       # Specific package
//
// [note]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/note
// [canvas]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/canvas
// [view]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/view
// [store]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/store
// [collab]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/collab
// [relay]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/relay
// [session]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/session
// [io]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/bizcanvas/pkg/observability
package pkg
