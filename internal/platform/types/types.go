// Package types holds the platform-neutral geometry and window types.
// They live in this leaf package so that platform backends (which import
// internal/x11) and internal/x11 (which returns these types) can share
// them without an import cycle; internal/platform re-exports them via
// type aliases.
package types

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Size describes window dimensions without a position.
type Size struct {
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}
