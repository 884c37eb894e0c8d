package daemon

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/glide/internal/animation"
	"github.com/1broseidon/glide/internal/platform"
	"github.com/1broseidon/glide/internal/registry"
	"github.com/1broseidon/glide/internal/x11"
)

// WindowSource feeds the registry from the platform backend and mints
// animation handles from the X11 connection.
type WindowSource struct {
	backend platform.Backend
	conn    *x11.Connection
	logger  *slog.Logger
}

var _ registry.Source = (*WindowSource)(nil)

// NewWindowSource creates a registry source over the given backend and connection.
func NewWindowSource(backend platform.Backend, conn *x11.Connection, logger *slog.Logger) *WindowSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &WindowSource{backend: backend, conn: conn, logger: logger}
}

func (s *WindowSource) ListWindows() ([]platform.Window, error) {
	return s.backend.ListWindows()
}

func (s *WindowSource) Handle(id platform.WindowID) animation.Handle {
	return s.conn.Window(xproto.Window(id), s.logger)
}
