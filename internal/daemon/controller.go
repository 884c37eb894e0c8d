// Package daemon wires the animation engine, window registry, and layout
// resolution into the long-running background process.
package daemon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/glide/internal/animation"
	"github.com/1broseidon/glide/internal/config"
	"github.com/1broseidon/glide/internal/layout"
	"github.com/1broseidon/glide/internal/platform"
	"github.com/1broseidon/glide/internal/registry"
)

// Controller executes window-movement commands against the engine. It is the
// shared target of IPC handlers, hotkeys, and MCP tools.
type Controller struct {
	backend  platform.Backend
	registry *registry.Registry
	engine   *animation.Engine
	logger   *slog.Logger

	mu           sync.RWMutex
	cfg          *config.Config
	activeLayout string
}

// NewController creates a controller over the given components.
func NewController(cfg *config.Config, backend platform.Backend, reg *registry.Registry, engine *animation.Engine, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend:  backend,
		registry: reg,
		engine:   engine,
		logger:   logger,
		cfg:      cfg,
	}
}

// ApplyLayout resolves the named layout against the active display and starts
// the transition. nil duration uses the configured movement duration.
func (c *Controller) ApplyLayout(name string, animated bool, duration *time.Duration) error {
	c.mu.RLock()
	l, ok := c.cfg.Layouts[name]
	gap := c.cfg.GapSize
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown layout: %s", name)
	}

	// Rescan before resolving so newly opened windows take part.
	if err := c.registry.Refresh(); err != nil {
		c.logger.Warn("registry refresh failed, using last snapshot", "error", err)
	}

	display, err := c.backend.ActiveDisplay()
	if err != nil {
		return fmt.Errorf("failed to determine active display: %w", err)
	}

	targets, err := layout.Resolve(&l, display.Usable, gap, c.registry.OrderedNames())
	if err != nil {
		return fmt.Errorf("failed to resolve layout %q: %w", name, err)
	}

	c.logger.Info("applying layout", "layout", name, "windows", len(targets), "animated", animated)
	c.engine.AnimateLayout(targets, animated, animation.Options{Duration: c.moveDuration(duration)})

	c.mu.Lock()
	c.activeLayout = name
	c.mu.Unlock()
	return nil
}

// MoveWindow animates the named window toward a partial target rectangle.
func (c *Controller) MoveWindow(window string, spec animation.RectSpec, duration *time.Duration) error {
	h, err := c.lookup(window)
	if err != nil {
		return err
	}

	c.engine.AnimateBounds(h, spec, animation.Options{Duration: c.moveDuration(duration)})
	return nil
}

// FadeWindow animates the named window's opacity toward to.
func (c *Controller) FadeWindow(window string, to float64, from *float64, duration *time.Duration) error {
	if to < 0 || to > 1 {
		return fmt.Errorf("opacity target %v out of range [0, 1]", to)
	}

	h, err := c.lookup(window)
	if err != nil {
		return err
	}

	if duration == nil {
		c.mu.RLock()
		d := c.cfg.FadeDuration()
		c.mu.RUnlock()
		duration = &d
	}
	c.engine.Fade(h, animation.FadeOptions{From: from, To: to, Duration: duration})
	return nil
}

// CycleLayout advances the active layout by step within the sorted layout
// names and applies it. Used by the cycle hotkey.
func (c *Controller) CycleLayout(step int) (string, error) {
	c.mu.RLock()
	names := c.cfg.LayoutNames()
	current := c.activeLayout
	if current == "" {
		current = c.cfg.DefaultLayout
	}
	c.mu.RUnlock()

	if len(names) == 0 {
		return "", fmt.Errorf("no layouts configured")
	}

	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	next := names[((idx+step)%len(names)+len(names))%len(names)]

	if err := c.ApplyLayout(next, true, nil); err != nil {
		return "", err
	}
	return next, nil
}

// ActiveLayout returns the most recently applied layout name.
func (c *Controller) ActiveLayout() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.activeLayout != "" {
		return c.activeLayout
	}
	return c.cfg.DefaultLayout
}

// WindowCount returns the number of currently registered windows.
func (c *Controller) WindowCount() int {
	return c.registry.Count()
}

// Animating reports whether any geometry animation is in flight.
func (c *Controller) Animating() bool {
	return c.engine.IsAnimating()
}

// UpdateConfig swaps the configuration. Matching rules apply on the next
// registry refresh; durations apply to subsequent animations.
func (c *Controller) UpdateConfig(cfg *config.Config) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	c.registry.SetRules(cfg.Windows)
}

// lookup resolves a window name, rescanning once when the name is not in the
// current snapshot.
func (c *Controller) lookup(window string) (animation.Handle, error) {
	if h, ok := c.registry.Lookup(window); ok {
		return h, nil
	}
	if err := c.registry.Refresh(); err != nil {
		return nil, fmt.Errorf("failed to refresh windows: %w", err)
	}
	if h, ok := c.registry.Lookup(window); ok {
		return h, nil
	}
	return nil, fmt.Errorf("no window registered as %q", window)
}

// moveDuration resolves a per-call override against the configured movement
// duration so config reloads affect subsequent animations.
func (c *Controller) moveDuration(override *time.Duration) *time.Duration {
	if override != nil {
		return override
	}
	c.mu.RLock()
	d := c.cfg.MoveDuration()
	c.mu.RUnlock()
	return &d
}
