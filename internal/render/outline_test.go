package render

import (
	"strings"
	"testing"
)

func TestOutline_HeadingHierarchy(t *testing.T) {
	input := `<h1 id="title">Title</h1>
<p>Intro text.</p>
<h2 id="section-a">Section A</h2>
<h3 id="subsection-a1">Subsection <code>A1</code></h3>
<h2 id="section-b">Section B</h2>
`
	outline, err := Outline(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Top-level: one h1 ("Title")
	if len(outline) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(outline))
	}
	h1 := outline[0]
	if h1.Title != "Title" {
		t.Errorf("expected h1 title %q, got %q", "Title", h1.Title)
	}

	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}
	secA := h1.Children[0]
	if secA.ID != "section-a" {
		t.Errorf("expected id %q, got %q", "section-a", secA.ID)
	}
	if len(secA.Children) != 1 {
		t.Fatalf("expected 1 h3 child under Section A, got %d", len(secA.Children))
	}
	if secA.Children[0].Title != "Subsection A1" {
		t.Errorf("expected inline text joined, got %q", secA.Children[0].Title)
	}
	if h1.Children[1].Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", h1.Children[1].Title)
	}
}

func TestOutline_SkippedLevels(t *testing.T) {
	// An h3 directly after an h1 still nests under it; a later h2 pops back.
	input := `<h1>A</h1><h3>B</h3><h2>C</h2><h1>D</h1>`
	outline, err := Outline(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(outline))
	}
	if len(outline[0].Children) != 2 {
		t.Fatalf("expected 2 children under A, got %d", len(outline[0].Children))
	}
	if outline[0].Children[0].Level != 3 || outline[0].Children[1].Level != 2 {
		t.Errorf("unexpected levels: %d, %d", outline[0].Children[0].Level, outline[0].Children[1].Level)
	}
}

func TestOutline_NoHeadings(t *testing.T) {
	outline, err := Outline(strings.NewReader("<p>Just text.</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 0 {
		t.Errorf("expected no sections, got %d", len(outline))
	}
}
