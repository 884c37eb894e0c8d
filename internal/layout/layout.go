// Package layout turns a named layout definition into concrete target
// rectangles for the animation engine.
package layout

import (
	"fmt"
	"math"

	"github.com/1broseidon/glide/internal/animation"
	"github.com/1broseidon/glide/internal/config"
	"github.com/1broseidon/glide/internal/platform"
)

// CalculateGrid determines grid dimensions for the given number of windows.
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// GridPositions computes window rectangles for a grid layout with gaps. Gaps
// surround every cell: (cols+1) horizontal gaps and (rows+1) vertical gaps.
func GridPositions(numWindows int, monitor platform.Rect, gapSize int) ([]platform.Rect, error) {
	if numWindows == 0 {
		return nil, nil
	}

	rows, cols := CalculateGrid(numWindows)

	cellWidth := (monitor.Width - (cols+1)*gapSize) / cols
	cellHeight := (monitor.Height - (rows+1)*gapSize) / rows
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for grid layout: monitor=%dx%d rows=%d cols=%d gap=%d",
			monitor.Width, monitor.Height, rows, cols, gapSize,
		)
	}

	positions := make([]platform.Rect, numWindows)
	for i := 0; i < numWindows; i++ {
		row := i / cols
		col := i % cols
		positions[i] = platform.Rect{
			X:      monitor.X + gapSize + col*(cellWidth+gapSize),
			Y:      monitor.Y + gapSize + row*(cellHeight+gapSize),
			Width:  cellWidth,
			Height: cellHeight,
		}
	}

	return positions, nil
}

// Resolve produces the per-window targets for a layout on the given monitor.
// Grid mode assigns the layout's window list (or fallbackOrder when the list
// is empty) to grid cells in order; explicit mode converts percent slots.
func Resolve(l *config.Layout, monitor platform.Rect, globalGap int, fallbackOrder []string) (map[string]animation.RectSpec, error) {
	gap := globalGap
	if l.GapSize != nil {
		gap = *l.GapSize
	}

	switch l.Mode {
	case config.LayoutModeGrid:
		names := l.Windows
		if len(names) == 0 {
			names = fallbackOrder
		}
		positions, err := GridPositions(len(names), monitor, gap)
		if err != nil {
			return nil, err
		}
		targets := make(map[string]animation.RectSpec, len(names))
		for i, name := range names {
			targets[name] = animation.FullSpec(positions[i])
		}
		return targets, nil

	case config.LayoutModeExplicit:
		targets := make(map[string]animation.RectSpec, len(l.Slots))
		for name, slot := range l.Slots {
			targets[name] = animation.FullSpec(slotRect(slot, monitor))
		}
		return targets, nil

	default:
		return nil, fmt.Errorf("unsupported layout mode: %q", l.Mode)
	}
}

// slotRect converts a percent slot to screen coordinates, clamped to at least
// one pixel per side.
func slotRect(slot config.SlotSpec, monitor platform.Rect) platform.Rect {
	r := platform.Rect{
		X:      monitor.X + monitor.Width*slot.XPercent/100,
		Y:      monitor.Y + monitor.Height*slot.YPercent/100,
		Width:  monitor.Width * slot.WidthPercent / 100,
		Height: monitor.Height * slot.HeightPercent / 100,
	}
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	return r
}
