package canvas

import (
	"math/rand"
	"time"
)

// Viewport bounds.
const (
	ZoomMin = 0.5
	ZoomMax = 3.0

	// ZoomStep and PanStep are the interactive adjustment increments used
	// by the viewers.
	ZoomStep = 0.1
	PanStep  = 5
)

// Default node extent in layout units.
const (
	DefaultNodeWidth  = 20
	DefaultNodeHeight = 8
)

// Style is the closed set of node display styles.
type Style string

const (
	StyleSticky  Style = "sticky"
	StyleCard    Style = "card"
	StyleMinimal Style = "minimal"
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	switch s {
	case StyleSticky, StyleCard, StyleMinimal:
		return true
	}
	return false
}

// Viewport is the pan/zoom window through which a canvas is observed.
// Zoom affects display scale only, never coordinate arithmetic.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport is the viewport of a freshly created canvas.
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}

// Clamp bounds zoom to [ZoomMin, ZoomMax] and keeps the offset
// non-negative.
func (v Viewport) Clamp() Viewport {
	if v.Zoom < ZoomMin {
		v.Zoom = ZoomMin
	}
	if v.Zoom > ZoomMax {
		v.Zoom = ZoomMax
	}
	if v.X < 0 {
		v.X = 0
	}
	if v.Y < 0 {
		v.Y = 0
	}
	return v
}

// Pan shifts the viewport by (dx, dy), clamping the result so the offset
// never goes negative.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v.Clamp()
}

// ZoomBy adjusts zoom by delta within the allowed bounds.
func (v Viewport) ZoomBy(delta float64) Viewport {
	v.Zoom += delta
	return v.Clamp()
}

// Node is a placed reference to one content item within one canvas. The
// pair (canvas id, content id) is unique: re-adding the same content item
// moves its existing node instead of creating a duplicate.
type Node struct {
	ID        string    `json:"id"`
	ContentID string    `json:"contentId"`
	Position  Position  `json:"position"`
	Size      Size      `json:"size"`
	ZoneID    string    `json:"zoneId,omitempty"`
	Color     string    `json:"color,omitempty"`
	Style     Style     `json:"style"`
	CreatedAt time.Time `json:"createdAt"`
}

// Canvas is a durable instance of a template holding placed nodes and a
// viewport. TemplateID is immutable after creation; if the referenced
// template has been removed from the catalog the canvas remains readable
// but cannot be auto-placed into.
type Canvas struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	TemplateID string            `json:"templateId"`
	Viewport   Viewport          `json:"viewport"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Nodes      []Node            `json:"nodes"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Template resolves the canvas's template from the catalog. ok is false
// when the template id is no longer known.
func (c *Canvas) Template() (Template, bool) {
	return Get(c.TemplateID)
}

// RandomPosition picks a pseudo-random position inside the template's
// nominal bounds. Freeform layouts tolerate visual overlap, so the result
// is not collision-checked.
func (t Template) RandomPosition(r *rand.Rand) Position {
	w := t.DefaultSize.Width - DefaultNodeWidth
	if w < 1 {
		w = 1
	}
	h := t.DefaultSize.Height - DefaultNodeHeight
	if h < 1 {
		h = 1
	}
	return Position{X: r.Float64() * w, Y: r.Float64() * h}
}
