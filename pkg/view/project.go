// Package view projects world-space canvas geometry into a bounded
// terminal grid.
//
// Projection subtracts the viewport offset from world coordinates; zoom is
// informational only and never enters coordinate arithmetic. Elements that
// end up entirely above or left of the viewport origin are culled. Elements
// extending past the far edge are kept and clipped by the grid, which is
// cheaper than exact culling and never clips something partially visible.
package view

import "github.com/matzehuels/bizcanvas/pkg/canvas"

// Rect is an axis-aligned rectangle, in world or screen units depending on
// context.
type Rect struct {
	X, Y, W, H float64
}

// Project converts a world rectangle to screen coordinates under the given
// viewport. visible is false when the rectangle lies entirely above/left of
// the viewport origin and should be skipped from rendering.
func Project(r Rect, v canvas.Viewport) (screen Rect, visible bool) {
	screen = Rect{
		X: r.X - v.X,
		Y: r.Y - v.Y,
		W: r.W,
		H: r.H,
	}
	if screen.X+screen.W < 0 || screen.Y+screen.H < 0 {
		return screen, false
	}
	return screen, true
}
