package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/note"
)

func sampleDocument() Document {
	return Document{
		Canvas: canvas.Canvas{
			ID:         "c1",
			Name:       "Q3 strategy",
			TemplateID: "swot",
			Viewport:   canvas.Viewport{X: 10, Y: 5, Zoom: 1.5},
			Nodes: []canvas.Node{
				{ID: "n1", ContentID: "note-1", Position: canvas.Position{X: 2, Y: 3}, Size: canvas.Size{Width: 46, Height: 2}, ZoneID: "s", Style: canvas.StyleSticky},
			},
		},
		Notes: []note.Note{
			{ID: "note-1", Type: note.TypeSwotS, Title: "Fast CI"},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleDocument()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.Canvas.Name != "Q3 strategy" || got.Canvas.TemplateID != "swot" {
		t.Errorf("canvas = %+v", got.Canvas)
	}
	if len(got.Canvas.Nodes) != 1 || got.Canvas.Nodes[0].ZoneID != "s" {
		t.Errorf("nodes = %+v", got.Canvas.Nodes)
	}
	if len(got.Notes) != 1 || got.Notes[0].Title != "Fast CI" {
		t.Errorf("notes = %+v", got.Notes)
	}
}

func TestImportClampsViewport(t *testing.T) {
	d := sampleDocument()
	d.Canvas.Viewport = canvas.Viewport{X: -10, Y: 0, Zoom: 99}

	var buf bytes.Buffer
	if err := Export(&buf, d); err != nil {
		t.Fatal(err)
	}
	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := canvas.Viewport{X: 0, Y: 0, Zoom: canvas.ZoomMax}
	if got.Canvas.Viewport != want {
		t.Errorf("viewport = %+v, want %+v", got.Canvas.Viewport, want)
	}
}

func TestImportDefaultsMissingStyle(t *testing.T) {
	d := sampleDocument()
	d.Canvas.Nodes[0].Style = ""

	var buf bytes.Buffer
	if err := Export(&buf, d); err != nil {
		t.Fatal(err)
	}
	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.Canvas.Nodes[0].Style != canvas.StyleSticky {
		t.Errorf("style = %q, want sticky", got.Canvas.Nodes[0].Style)
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"missing name", func(d *Document) { d.Canvas.Name = "" }},
		{"missing template", func(d *Document) { d.Canvas.TemplateID = "" }},
		{"duplicate note id", func(d *Document) { d.Notes = append(d.Notes, d.Notes[0]) }},
		{"invalid note type", func(d *Document) { d.Notes[0].Type = "banana" }},
		{"node without content", func(d *Document) { d.Canvas.Nodes[0].ContentID = "" }},
		{"content placed twice", func(d *Document) {
			d.Canvas.Nodes = append(d.Canvas.Nodes, d.Canvas.Nodes[0])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDocument()
			tt.mutate(&d)

			var buf bytes.Buffer
			if err := Export(&buf, d); err != nil {
				t.Fatal(err)
			}
			if _, err := Import(&buf); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	if _, err := Import(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestImportToleratesDanglingContentRefs(t *testing.T) {
	d := sampleDocument()
	d.Notes = nil // nodes keep their content ids

	var buf bytes.Buffer
	if err := Export(&buf, d); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(&buf); err != nil {
		t.Errorf("dangling content ref rejected: %v", err)
	}
}
