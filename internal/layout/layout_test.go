package layout

import (
	"strings"
	"testing"

	"github.com/1broseidon/glide/internal/config"
	"github.com/1broseidon/glide/internal/platform"
)

func TestCalculateGrid(t *testing.T) {
	tests := []struct {
		n          int
		rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		rows, cols := CalculateGrid(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Fatalf("CalculateGrid(%d) = %d,%d; want %d,%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestGridPositions_GapsAndCells(t *testing.T) {
	monitor := platform.Rect{X: 0, Y: 0, Width: 210, Height: 110}
	positions, err := GridPositions(2, monitor, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// cols=2, rows=1: cellWidth=(210-30)/2=90, cellHeight=(110-20)/1=90
	want := []platform.Rect{
		{X: 10, Y: 10, Width: 90, Height: 90},
		{X: 110, Y: 10, Width: 90, Height: 90},
	}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("position %d = %+v, want %+v", i, positions[i], want[i])
		}
	}
}

func TestGridPositions_InsufficientSpace(t *testing.T) {
	monitor := platform.Rect{Width: 20, Height: 10}
	if _, err := GridPositions(2, monitor, 20); err == nil {
		t.Fatalf("expected error for insufficient space")
	}
}

func TestResolve_GridUsesFallbackOrder(t *testing.T) {
	l := &config.Layout{Mode: config.LayoutModeGrid}
	monitor := platform.Rect{Width: 210, Height: 110}

	targets, err := Resolve(l, monitor, 10, []string{"editor", "terminal"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	ed := targets["editor"]
	if ed.X == nil || *ed.X != 10 || ed.Width == nil || *ed.Width != 90 {
		t.Fatalf("unexpected editor target: %+v", ed)
	}
	te := targets["terminal"]
	if te.X == nil || *te.X != 110 {
		t.Fatalf("unexpected terminal target: %+v", te)
	}
}

func TestResolve_ExplicitSlots(t *testing.T) {
	l := &config.Layout{
		Mode: config.LayoutModeExplicit,
		Slots: map[string]config.SlotSpec{
			"editor":   {XPercent: 0, YPercent: 0, WidthPercent: 60, HeightPercent: 100},
			"terminal": {XPercent: 60, YPercent: 0, WidthPercent: 40, HeightPercent: 100},
		},
	}
	monitor := platform.Rect{X: 100, Y: 50, Width: 1000, Height: 800}

	targets, err := Resolve(l, monitor, 0, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	ed := targets["editor"]
	if *ed.X != 100 || *ed.Y != 50 || *ed.Width != 600 || *ed.Height != 800 {
		t.Fatalf("unexpected editor target: x=%d y=%d w=%d h=%d", *ed.X, *ed.Y, *ed.Width, *ed.Height)
	}
	te := targets["terminal"]
	if *te.X != 700 || *te.Width != 400 {
		t.Fatalf("unexpected terminal target: x=%d w=%d", *te.X, *te.Width)
	}
}

func TestResolve_LayoutGapOverride(t *testing.T) {
	gap := 0
	l := &config.Layout{Mode: config.LayoutModeGrid, GapSize: &gap, Windows: []string{"only"}}
	monitor := platform.Rect{Width: 200, Height: 100}

	targets, err := Resolve(l, monitor, 50, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	only := targets["only"]
	if *only.X != 0 || *only.Width != 200 || *only.Height != 100 {
		t.Fatalf("gap override ignored: %+v", only)
	}
}

func TestResolve_UnknownMode(t *testing.T) {
	l := &config.Layout{Mode: "spiral"}
	_, err := Resolve(l, platform.Rect{Width: 100, Height: 100}, 0, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported layout mode") {
		t.Fatalf("expected unsupported mode error, got %v", err)
	}
}
