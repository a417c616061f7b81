package canvas

import (
	"reflect"
	"testing"
)

func TestAutoPlaceSWOT(t *testing.T) {
	tmpl, ok := Get("swot")
	if !ok {
		t.Fatal("swot template missing")
	}

	items := []Item{
		{ID: "a", Type: "swot_s"},
		{ID: "b", Type: "swot_w"},
		{ID: "c", Type: "idea"}, // matches no zone
	}

	got := AutoPlace(tmpl, items)
	if len(got) != 2 {
		t.Fatalf("placed %d items, want 2", len(got))
	}

	if got[0].ContentID != "a" || got[0].ZoneID != "s" {
		t.Errorf("first placement = %q in zone %q, want a in s", got[0].ContentID, got[0].ZoneID)
	}
	if got[1].ContentID != "b" || got[1].ZoneID != "w" {
		t.Errorf("second placement = %q in zone %q, want b in w", got[1].ContentID, got[1].ZoneID)
	}

	// Zone s sits at (0,0) sized 50x20: first item lands at (2,3), 46x2,
	// zone color.
	want := Placement{
		ContentID: "a",
		ZoneID:    "s",
		Position:  Position{X: 2, Y: 3},
		Size:      Size{Width: 46, Height: 2},
		Color:     "#00ff41",
	}
	if got[0] != want {
		t.Errorf("placement = %+v, want %+v", got[0], want)
	}
}

func TestAutoPlaceStacksVertically(t *testing.T) {
	tmpl, _ := Get("swot")

	items := []Item{
		{ID: "s1", Type: "swot_s"},
		{ID: "s2", Type: "swot_s"},
		{ID: "s3", Type: "swot_s"},
	}

	got := AutoPlace(tmpl, items)
	if len(got) != 3 {
		t.Fatalf("placed %d items, want 3", len(got))
	}

	for i, p := range got {
		wantY := 3 + float64(i*3)
		if p.Position.Y != wantY {
			t.Errorf("item %d y = %v, want %v", i, p.Position.Y, wantY)
		}
		if p.Position.X != 2 {
			t.Errorf("item %d x = %v, want 2", i, p.Position.X)
		}
	}

	// Rows are 2 units tall with a 3 unit step, so stacked placements
	// never overlap.
	for i := 1; i < len(got); i++ {
		prevBottom := got[i-1].Position.Y + got[i-1].Size.Height
		if got[i].Position.Y < prevBottom {
			t.Errorf("item %d overlaps previous: y=%v, previous bottom=%v", i, got[i].Position.Y, prevBottom)
		}
	}
}

func TestAutoPlaceDeterministic(t *testing.T) {
	tmpl, _ := Get("personas")

	items := []Item{
		{ID: "p1", Type: "persona"},
		{ID: "g1", Type: "goal"},
		{ID: "p2", Type: "persona"},
		{ID: "x1", Type: "note"},
		{ID: "pp1", Type: "painpoint"},
	}

	first := AutoPlace(tmpl, items)
	second := AutoPlace(tmpl, items)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAutoPlaceFirstMatchingZoneWins(t *testing.T) {
	// Both persona zones p1/p2/p3 accept "persona"; declaration order
	// breaks the tie, so everything stacks in p1.
	tmpl, _ := Get("personas")

	got := AutoPlace(tmpl, []Item{
		{ID: "a", Type: "persona"},
		{ID: "b", Type: "persona"},
	})
	if len(got) != 2 {
		t.Fatalf("placed %d items, want 2", len(got))
	}
	for i, p := range got {
		if p.ZoneID != "p1" {
			t.Errorf("item %d placed in zone %q, want p1", i, p.ZoneID)
		}
	}
}

func TestAutoPlaceRespectsAllowedTypes(t *testing.T) {
	tmpl, _ := Get("swot")

	got := AutoPlace(tmpl, []Item{
		{ID: "a", Type: "swot_o"},
		{ID: "b", Type: "persona"},
		{ID: "c", Type: ""},
	})

	if len(got) != 1 {
		t.Fatalf("placed %d items, want 1", len(got))
	}
	if got[0].ZoneID != "o" {
		t.Errorf("zone = %q, want o", got[0].ZoneID)
	}

	for _, p := range got {
		zone, ok := matchZone(tmpl, "swot_o")
		if !ok || p.ZoneID != zone.ID {
			t.Errorf("placement landed in zone %q whose allowed types exclude the item", p.ZoneID)
		}
	}
}

func TestAutoPlaceDisabledTemplate(t *testing.T) {
	tmpl, ok := Get("kanban")
	if !ok {
		t.Fatal("kanban template missing")
	}
	if tmpl.AutoPlace {
		t.Fatal("kanban unexpectedly allows auto-placement")
	}

	got := AutoPlace(tmpl, []Item{{ID: "a", Type: "note"}})
	if got != nil {
		t.Errorf("AutoPlace on freeform template = %+v, want nil", got)
	}
}

func TestAutoPlaceBMCNoTypedZones(t *testing.T) {
	// bmc allows auto-placement but declares no type constraints, so every
	// item is skipped.
	tmpl, _ := Get("bmc")

	got := AutoPlace(tmpl, []Item{
		{ID: "a", Type: "idea"},
		{ID: "b", Type: "note"},
	})
	if len(got) != 0 {
		t.Errorf("placed %d items into untyped zones, want 0", len(got))
	}
}
