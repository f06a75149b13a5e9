package screen

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/vt"
)

func TestViewDraw(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(6, 2)

	g := NewGrid(6, 2)
	g.SetAttributes(vt.ColorPatch(vt.ColorRed))
	g.SetAttributes(vt.WeightPatch(vt.WeightBold))
	for _, r := range "hi" {
		g.Write(r)
	}

	NewView(sim).Draw(g)

	ch, _, style, _ := sim.GetContent(0, 0)
	if ch != 'h' {
		t.Errorf("expected 'h' at origin, got %q", ch)
	}
	fg, _, attrs := style.Decompose()
	if fg != tcell.ColorMaroon {
		t.Errorf("expected red foreground, got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("expected bold style")
	}

	ch, _, _, _ = sim.GetContent(1, 0)
	if ch != 'i' {
		t.Errorf("expected 'i' at column 2, got %q", ch)
	}
}

func TestViewHidesCursor(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(4, 2)

	g := NewGrid(4, 2)
	g.MoveCursorAbsolute(vt.Position{Vertical: 2, Horizontal: 3})
	NewView(sim).Draw(g)
	if x, y, visible := sim.GetCursor(); !visible || x != 2 || y != 1 {
		t.Errorf("expected visible cursor at (2,1), got (%d,%d) visible=%t", x, y, visible)
	}

	g.ShowCursor(false)
	NewView(sim).Draw(g)
	if _, _, visible := sim.GetCursor(); visible {
		t.Error("expected cursor to be hidden")
	}
}
