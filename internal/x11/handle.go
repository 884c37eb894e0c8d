package x11

import (
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	platform "github.com/1broseidon/glide/internal/platform/types"
)

// Window adapts one X11 window to the animation engine's handle contract.
// Primitive failures are logged and swallowed: a window that stops answering
// is reported as destroyed on the next liveness check, and the worst visible
// outcome is an abrupt (non-animated) change.
type Window struct {
	conn       *Connection
	id         xproto.Window
	logger     *slog.Logger
	unmaximize sync.Once
}

// Window returns an animation handle for the given window ID.
func (c *Connection) Window(id xproto.Window, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	return &Window{conn: c, id: id, logger: logger}
}

// ID returns the platform-neutral window identifier.
func (w *Window) ID() platform.WindowID {
	return platform.WindowID(w.id)
}

// Bounds returns the window's current geometry in root coordinates.
func (w *Window) Bounds() platform.Rect {
	rect, err := w.conn.WindowGeometry(w.id)
	if err != nil {
		w.logger.Debug("window geometry read failed", "window", w.id, "error", err)
		return platform.Rect{}
	}
	return rect
}

// SetBounds moves and resizes the window. The first write unmaximizes the
// window so the WM honors geometry requests.
func (w *Window) SetBounds(r platform.Rect) {
	w.unmaximize.Do(func() {
		if err := w.conn.UnmaximizeWindow(w.id); err != nil {
			w.logger.Debug("unmaximize failed", "window", w.id, "error", err)
		}
	})
	if err := w.conn.MoveResizeWindow(w.id, r.X, r.Y, r.Width, r.Height); err != nil {
		w.logger.Debug("move-resize failed", "window", w.id, "error", err)
	}
}

// Opacity returns the window's compositor opacity.
func (w *Window) Opacity() float64 {
	opacity, err := w.conn.WindowOpacity(w.id)
	if err != nil {
		w.logger.Debug("opacity read failed", "window", w.id, "error", err)
		return 1
	}
	return opacity
}

// SetOpacity writes the window's compositor opacity.
func (w *Window) SetOpacity(opacity float64) {
	if err := w.conn.SetWindowOpacity(w.id, opacity); err != nil {
		w.logger.Debug("opacity write failed", "window", w.id, "error", err)
	}
}

// Destroyed reports whether the window has gone away.
func (w *Window) Destroyed() bool {
	return !w.conn.WindowExists(w.id)
}
