package view

import (
	"strings"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
)

// Grid is a fixed-size character buffer for one rendered frame.
type Grid struct {
	w, h  int
	cells [][]rune
}

// NewGrid allocates a blank grid of the given dimensions.
func NewGrid(w, h int) *Grid {
	cells := make([][]rune, h)
	for y := range cells {
		row := make([]rune, w)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &Grid{w: w, h: h, cells: cells}
}

// set writes a rune, silently dropping anything outside the grid. Drawing
// past the far edge is expected; the grid is the clip boundary.
func (g *Grid) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y][x] = r
}

// text writes a string starting at (x, y), clipped to the grid.
func (g *Grid) text(x, y int, s string) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r)
	}
}

// box draws a single-line border rectangle.
func (g *Grid) box(x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		g.set(x+i, y, '─')
		g.set(x+i, y+h-1, '─')
	}
	for i := 1; i < h-1; i++ {
		g.set(x, y+i, '│')
		g.set(x+w-1, y+i, '│')
	}
	g.set(x, y, '┌')
	g.set(x+w-1, y, '┐')
	g.set(x, y+h-1, '└')
	g.set(x+w-1, y+h-1, '┘')
}

// Lines returns the rendered frame, one string per row.
func (g *Grid) Lines() []string {
	out := make([]string, g.h)
	for y, row := range g.cells {
		out[y] = strings.TrimRight(string(row), " ")
	}
	return out
}

// Frame renders a canvas into a w×h grid. titles maps content ids to
// display titles; nodes whose content is unknown render their content id.
// Zones are drawn first so nodes layer on top.
func Frame(c *canvas.Canvas, tmpl canvas.Template, titles map[string]string, w, h int) []string {
	g := NewGrid(w, h)

	for _, z := range tmpl.Zones {
		screen, visible := Project(Rect{X: z.Position.X, Y: z.Position.Y, W: z.Size.Width, H: z.Size.Height}, c.Viewport)
		if !visible {
			continue
		}
		x, y := int(screen.X), int(screen.Y)
		zw, zh := int(screen.W), int(screen.H)
		g.box(x, y, zw, zh)

		label := z.Icon + " " + z.Label
		if len([]rune(label)) > zw-4 && zw > 4 {
			label = string([]rune(label)[:zw-4])
		}
		g.text(x+2, y+1, label)
	}

	for _, n := range c.Nodes {
		screen, visible := Project(Rect{X: n.Position.X, Y: n.Position.Y, W: n.Size.Width, H: n.Size.Height}, c.Viewport)
		if !visible {
			continue
		}
		x, y := int(screen.X), int(screen.Y)
		nw := int(screen.W)

		title := titles[n.ContentID]
		if title == "" {
			title = n.ContentID
		}
		if max := nw - 4; max > 0 && len([]rune(title)) > max {
			title = string([]rune(title)[:max])
		}

		switch n.Style {
		case canvas.StyleMinimal:
			g.text(x, y, "• "+title)
		default:
			g.box(x, y, nw, int(screen.H))
			g.text(x+2, y+1, title)
		}
	}

	return g.Lines()
}
