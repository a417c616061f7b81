package view

import (
	"strings"
	"testing"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name        string
		rect        Rect
		viewport    canvas.Viewport
		wantScreen  Rect
		wantVisible bool
	}{
		{
			name:        "identity at origin",
			rect:        Rect{X: 5, Y: 5, W: 10, H: 10},
			viewport:    canvas.Viewport{Zoom: 1},
			wantScreen:  Rect{X: 5, Y: 5, W: 10, H: 10},
			wantVisible: true,
		},
		{
			name:        "fully above left is culled",
			rect:        Rect{X: 0, Y: 0, W: 5, H: 5},
			viewport:    canvas.Viewport{X: 10, Y: 10, Zoom: 1},
			wantScreen:  Rect{X: -10, Y: -10, W: 5, H: 5},
			wantVisible: false,
		},
		{
			name:        "partially visible is kept",
			rect:        Rect{X: 12, Y: 12, W: 5, H: 5},
			viewport:    canvas.Viewport{X: 10, Y: 10, Zoom: 1},
			wantScreen:  Rect{X: 2, Y: 2, W: 5, H: 5},
			wantVisible: true,
		},
		{
			name:        "straddling origin is kept",
			rect:        Rect{X: 8, Y: 8, W: 5, H: 5},
			viewport:    canvas.Viewport{X: 10, Y: 10, Zoom: 1},
			wantScreen:  Rect{X: -2, Y: -2, W: 5, H: 5},
			wantVisible: true,
		},
		{
			name:        "far edge is never culled",
			rect:        Rect{X: 500, Y: 500, W: 5, H: 5},
			viewport:    canvas.Viewport{Zoom: 1},
			wantScreen:  Rect{X: 500, Y: 500, W: 5, H: 5},
			wantVisible: true,
		},
		{
			name:        "zoom does not affect coordinates",
			rect:        Rect{X: 20, Y: 20, W: 5, H: 5},
			viewport:    canvas.Viewport{X: 10, Y: 10, Zoom: 3},
			wantScreen:  Rect{X: 10, Y: 10, W: 5, H: 5},
			wantVisible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen, visible := Project(tt.rect, tt.viewport)
			if screen != tt.wantScreen {
				t.Errorf("screen = %+v, want %+v", screen, tt.wantScreen)
			}
			if visible != tt.wantVisible {
				t.Errorf("visible = %v, want %v", visible, tt.wantVisible)
			}
		})
	}
}

func TestFrameDrawsZoneAtScreenPosition(t *testing.T) {
	tmpl := canvas.Template{
		ID: "test",
		Zones: []canvas.Zone{
			{ID: "off", Label: "GONE", Position: canvas.Position{X: 0, Y: 0}, Size: canvas.Size{Width: 5, Height: 5}},
			{ID: "on", Label: "HERE", Icon: "■", Position: canvas.Position{X: 12, Y: 12}, Size: canvas.Size{Width: 12, Height: 6}},
		},
	}
	c := &canvas.Canvas{Viewport: canvas.Viewport{X: 10, Y: 10, Zoom: 1}}

	lines := Frame(c, tmpl, nil, 40, 12)

	// The culled zone's label must not appear anywhere.
	for _, line := range lines {
		if strings.Contains(line, "GONE") {
			t.Fatalf("culled zone rendered: %q", line)
		}
	}

	// The visible zone projects to screen (2,2): border corner at row 2
	// col 2, label on the next row.
	if len(lines) < 4 {
		t.Fatalf("frame too short: %d lines", len(lines))
	}
	if got := []rune(lines[2])[2]; got != '┌' {
		t.Errorf("corner at (2,2) = %q, want ┌", got)
	}
	if !strings.Contains(lines[3], "■ HERE") {
		t.Errorf("zone label missing from row 3: %q", lines[3])
	}
}

func TestFrameNodesLayerOverZones(t *testing.T) {
	tmpl := canvas.Template{
		Zones: []canvas.Zone{
			{ID: "z", Label: "ZONE", Position: canvas.Position{X: 0, Y: 0}, Size: canvas.Size{Width: 30, Height: 10}},
		},
	}
	c := &canvas.Canvas{
		Viewport: canvas.Viewport{Zoom: 1},
		Nodes: []canvas.Node{
			{ContentID: "n1", Position: canvas.Position{X: 2, Y: 3}, Size: canvas.Size{Width: 12, Height: 3}, Style: canvas.StyleSticky},
		},
	}

	lines := Frame(c, tmpl, map[string]string{"n1": "ship it"}, 40, 12)

	found := false
	for _, line := range lines {
		if strings.Contains(line, "ship it") {
			found = true
		}
	}
	if !found {
		t.Error("node title not rendered")
	}

	// The node box overwrites the zone interior at its position.
	if got := []rune(lines[3])[2]; got != '┌' {
		t.Errorf("node corner at (2,3) = %q, want ┌", got)
	}
}

func TestFrameUnknownContentFallsBackToID(t *testing.T) {
	c := &canvas.Canvas{
		Viewport: canvas.Viewport{Zoom: 1},
		Nodes: []canvas.Node{
			{ContentID: "orphan", Position: canvas.Position{X: 0, Y: 0}, Size: canvas.Size{Width: 14, Height: 3}, Style: canvas.StyleMinimal},
		},
	}

	lines := Frame(c, canvas.Template{}, nil, 30, 5)
	if !strings.Contains(lines[0], "• orphan") {
		t.Errorf("fallback rendering = %q", lines[0])
	}
}
