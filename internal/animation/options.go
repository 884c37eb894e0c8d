package animation

import (
	"time"

	"github.com/1broseidon/glide/internal/platform"
)

// Default timings. Durations are caller-overridable per animation; the step
// interval approximates a 120Hz update cadence.
const (
	DefaultMoveDuration = 300 * time.Millisecond
	DefaultFadeDuration = 250 * time.Millisecond
	DefaultStepInterval = 8 * time.Millisecond
)

// Options configures a bounds or position animation. A nil Duration selects
// the engine's move default; a duration <= 0 snaps to the target immediately.
type Options struct {
	Duration   *time.Duration
	OnComplete func()
}

// MoveOptions configures the legacy x/y animation. Size, when set, overrides
// the window's dimensions for the whole animation; otherwise the size captured
// at start is held.
type MoveOptions struct {
	Duration   *time.Duration
	Size       *platform.Size
	OnComplete func()
}

// FadeOptions configures an opacity animation. From defaults to the window's
// opacity at start.
type FadeOptions struct {
	From       *float64
	To         float64
	Duration   *time.Duration
	OnComplete func()
}

// RectSpec is a partial target rectangle. Unset fields keep the window's
// current value. The same shape is used by layout configuration, IPC payloads
// and MCP tool inputs.
type RectSpec struct {
	X      *int `yaml:"x,omitempty" json:"x,omitempty"`
	Y      *int `yaml:"y,omitempty" json:"y,omitempty"`
	Width  *int `yaml:"width,omitempty" json:"width,omitempty"`
	Height *int `yaml:"height,omitempty" json:"height,omitempty"`
}

// ApplyTo merges the set fields onto base, producing a complete target rectangle.
func (s RectSpec) ApplyTo(base platform.Rect) platform.Rect {
	out := base
	if s.X != nil {
		out.X = *s.X
	}
	if s.Y != nil {
		out.Y = *s.Y
	}
	if s.Width != nil {
		out.Width = *s.Width
	}
	if s.Height != nil {
		out.Height = *s.Height
	}
	return out
}

// FullSpec returns a RectSpec with every field of r set.
func FullSpec(r platform.Rect) RectSpec {
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	return RectSpec{X: &x, Y: &y, Width: &w, Height: &h}
}
