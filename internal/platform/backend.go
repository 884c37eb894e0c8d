package platform

import "github.com/1broseidon/glide/internal/platform/types"

// These aliases re-export the platform-neutral types from the leaf
// types package, keeping platform.Rect etc. identical types for all
// callers while letting internal/x11 depend on the types without an
// import cycle.

// WindowID is a platform-neutral window identifier.
type WindowID = types.WindowID

// Rect describes a rectangular region in screen coordinates.
type Rect = types.Rect

// Size describes window dimensions without a position.
type Size = types.Size

// Display describes a physical display and its usable work area.
type Display = types.Display

// Window contains metadata and geometry for a top-level window.
type Window = types.Window

// Backend abstracts window-system queries across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindows() ([]Window, error)
}
