package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"fixdesk/internal/catalog"
)

func TestComposeLayers(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 5)
	base = strings.TrimSuffix(base, "\n")

	out := composeLayers(base, 20, 5, newPositionedLayer("AB\nCD", 3, 1), nil)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if lines[0] != strings.Repeat(".", 20) {
		t.Fatalf("row 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "...AB..") || !strings.HasPrefix(lines[2], "...CD..") {
		t.Fatalf("layer misplaced:\n%s", strings.Join(lines, "\n"))
	}
}

func TestPositionedLayerCanvas(t *testing.T) {
	canvas := newPositionedLayer("abc\nde", 4, 2).Render()
	if canvas == nil {
		t.Fatal("expected a canvas")
	}
	if w, h := canvas.Size(); w != 3 || h != 2 {
		t.Fatalf("size = %dx%d, want 3x2", w, h)
	}
	if x, y := canvas.Offset(); x != 4 || y != 2 {
		t.Fatalf("offset = (%d,%d)", x, y)
	}
	if newPositionedLayer("  ", 0, 0).Render() != nil {
		t.Fatal("blank content should not render")
	}
}

func TestCenteredOffsets(t *testing.T) {
	x, y := centeredOffsets(80, 24, 20, 10, 1, 1)
	if x != 30 {
		t.Fatalf("x = %d, want 30", x)
	}
	if y < 1 || y+10 > 23 {
		t.Fatalf("y = %d outside margins", y)
	}
}

func TestLowestPrice(t *testing.T) {
	if _, ok := lowestPrice(catalog.Service{}); ok {
		t.Fatal("no items, no price")
	}
	svc := catalog.Service{Items: []catalog.LineItem{{PriceCents: 500}, {PriceCents: 120}, {PriceCents: 900}}}
	if got, _ := lowestPrice(svc); got != 120 {
		t.Fatalf("lowest = %d", got)
	}
}

func TestTrimLeadingWhitespaceLines(t *testing.T) {
	in := "\n   \n\x1b[0m  \x1b[0m\nBody\n\nMore"
	if got := trimLeadingWhitespaceLines(in); got != "Body\n\nMore" {
		t.Fatalf("got %q", got)
	}
}
