// Package animation moves windows smoothly instead of teleporting them.
//
// The engine interpolates window geometry and opacity over time with a cubic
// ease-out curve, driven by short scheduled steps. For geometry animations it
// guarantees at most one live step chain per window: starting a new bounds
// animation supersedes any pending one, and a superseded step provably
// performs no further writes (generation tokens checked against the timer
// table). Opacity animations run independently of the table so a fade can
// overlap a slide on the same window.
package animation

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/1broseidon/glide/internal/platform"
)

// Handle is a non-owning reference to a live window. Implementations must not
// call back into the engine from these methods.
type Handle interface {
	ID() platform.WindowID
	Bounds() platform.Rect
	SetBounds(platform.Rect)
	Opacity() float64
	SetOpacity(float64)
	Destroyed() bool
}

// Lookup resolves a logical window name to a handle.
type Lookup interface {
	Lookup(name string) (Handle, bool)
}

// Config holds engine construction parameters. Zero values select defaults.
type Config struct {
	MoveDuration time.Duration
	FadeDuration time.Duration
	StepInterval time.Duration
	Scheduler    Scheduler
	Lookup       Lookup
	Logger       *slog.Logger
}

// pendingEntry records the single scheduled step for a window. The generation
// token lets a fired step detect that it has been superseded: a step whose
// generation no longer matches the table entry must not touch the window.
type pendingEntry struct {
	gen   uint64
	timer Timer
}

// Engine owns animation lifecycles for a collection of windows.
type Engine struct {
	sched   Scheduler
	lookup  Lookup
	logger  *slog.Logger
	moveDur time.Duration
	fadeDur time.Duration
	step    time.Duration

	mu        sync.Mutex
	pending   map[platform.WindowID]pendingEntry
	genSeq    uint64
	animating bool
	closed    bool
}

// New creates an animation engine with the given configuration.
func New(cfg Config) *Engine {
	if cfg.MoveDuration <= 0 {
		cfg.MoveDuration = DefaultMoveDuration
	}
	if cfg.FadeDuration <= 0 {
		cfg.FadeDuration = DefaultFadeDuration
	}
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = DefaultStepInterval
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewWallClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Engine{
		sched:   cfg.Scheduler,
		lookup:  cfg.Lookup,
		logger:  cfg.Logger,
		moveDur: cfg.MoveDuration,
		fadeDur: cfg.FadeDuration,
		step:    cfg.StepInterval,
		pending: make(map[platform.WindowID]pendingEntry),
	}
}

// session is one animation's frozen state. The start snapshot is captured once
// and never re-read from the window, so asynchronous mutation outside the
// engine cannot make interpolation drift.
type session struct {
	start      platform.Rect
	target     platform.Rect
	startedAt  time.Time
	duration   time.Duration
	done       sync.Once
	onComplete func()
}

// finish invokes the completion callback exactly once.
func (s *session) finish() {
	s.done.Do(func() {
		if s.onComplete != nil {
			s.onComplete()
		}
	})
}

// AnimateBounds animates all four geometry fields toward target. Unset target
// fields are merged from the window's current bounds. A pending bounds or
// position animation on the same window is cancelled before the start
// snapshot is captured, so back-to-back calls interpolate from where the
// window actually is.
func (e *Engine) AnimateBounds(h Handle, target RectSpec, opts Options) {
	e.mu.Lock()
	if e.closed || !e.usableLocked(h) {
		e.mu.Unlock()
		completeNow(opts.OnComplete)
		return
	}
	e.cancelPendingLocked(h.ID())

	start := h.Bounds()
	sess := &session{
		start:      start,
		target:     target.ApplyTo(start),
		startedAt:  e.sched.Now(),
		duration:   resolveDuration(opts.Duration, e.moveDur),
		onComplete: opts.OnComplete,
	}
	e.genSeq++
	gen := e.genSeq
	e.pending[h.ID()] = pendingEntry{gen: gen}
	e.animating = true
	e.mu.Unlock()

	// First step runs on the caller's tick so zero-duration animations snap
	// synchronously.
	e.stepBounds(h, gen, sess)
}

// AnimatePosition merges a partial {x, y} onto the window's current bounds and
// delegates to AnimateBounds, inheriting its supersede semantics.
func (e *Engine) AnimatePosition(h Handle, x, y *int, opts Options) {
	e.AnimateBounds(h, RectSpec{X: x, Y: y}, opts)
}

// AnimateWindow is the simple repositioning mode: x/y interpolation only,
// outside the timer table. The window keeps the size captured at start, or
// opts.Size when set. Callers use it where overlap with another animation on
// the same window is not expected.
func (e *Engine) AnimateWindow(h Handle, targetX, targetY int, opts MoveOptions) {
	e.mu.Lock()
	if e.closed || !e.usableLocked(h) {
		e.mu.Unlock()
		completeNow(opts.OnComplete)
		return
	}

	start := h.Bounds()
	size := platform.Size{Width: start.Width, Height: start.Height}
	if opts.Size != nil {
		size = *opts.Size
	}
	sess := &session{
		start:      start,
		target:     platform.Rect{X: targetX, Y: targetY, Width: size.Width, Height: size.Height},
		startedAt:  e.sched.Now(),
		duration:   resolveDuration(opts.Duration, e.moveDur),
		onComplete: opts.OnComplete,
	}
	e.mu.Unlock()

	e.stepWindow(h, sess)
}

// AnimateLayout applies a batch of per-window targets. Names resolve through
// the configured Lookup; absent or destroyed windows are skipped. When
// animated, each window animates independently via AnimateBounds with no
// batch-level completion. Otherwise bounds apply immediately. opts.OnComplete
// is ignored; opts.Duration applies to every window in the batch.
func (e *Engine) AnimateLayout(layout map[string]RectSpec, animated bool, opts Options) {
	if e.lookup == nil {
		return
	}
	names := make([]string, 0, len(layout))
	for name := range layout {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		h, ok := e.lookup.Lookup(name)
		if !ok || h == nil || h.Destroyed() {
			e.logger.Debug("layout entry skipped", "window", name)
			continue
		}
		if animated {
			e.AnimateBounds(h, layout[name], Options{Duration: opts.Duration})
			continue
		}
		e.mu.Lock()
		if !e.closed && e.usableLocked(h) {
			h.SetBounds(layout[name].ApplyTo(h.Bounds()))
		}
		e.mu.Unlock()
	}
}

// IsAnimating reports whether at least one bounds/position animation is in
// flight. Purely an activity signal; it carries no ordering guarantee.
func (e *Engine) IsAnimating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animating
}

// Destroy cancels all pending work and shuts the engine down. Safe to call
// multiple times; animations requested afterwards complete immediately
// without touching their windows.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for id, entry := range e.pending {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(e.pending, id)
	}
	e.animating = false
	e.closed = true
	e.logger.Debug("animation engine destroyed")
}

// stepBounds advances a table-managed geometry animation by one frame.
func (e *Engine) stepBounds(h Handle, gen uint64, sess *session) {
	e.mu.Lock()
	entry, ok := e.pending[h.ID()]
	if !ok || entry.gen != gen {
		// Superseded after this step was scheduled.
		e.mu.Unlock()
		return
	}
	if !e.usableLocked(h) {
		e.mu.Unlock()
		sess.finish()
		return
	}

	p := progress(e.sched.Now().Sub(sess.startedAt), sess.duration)
	if p >= 1 {
		// Final write is the exact target, not the eased approximation.
		h.SetBounds(sess.target)
		delete(e.pending, h.ID())
		e.animating = len(e.pending) > 0
		e.mu.Unlock()
		sess.finish()
		return
	}

	h.SetBounds(lerpRect(sess.start, sess.target, easeOutCubic(p)))
	entry.timer = e.sched.AfterFunc(e.step, func() { e.stepBounds(h, gen, sess) })
	e.pending[h.ID()] = entry
	e.mu.Unlock()
}

// stepWindow advances a legacy position animation. Only x/y interpolate; the
// session's target width/height are written as-is every frame.
func (e *Engine) stepWindow(h Handle, sess *session) {
	e.mu.Lock()
	if e.closed || !e.usableLocked(h) {
		e.mu.Unlock()
		sess.finish()
		return
	}

	p := progress(e.sched.Now().Sub(sess.startedAt), sess.duration)
	if p >= 1 {
		h.SetBounds(sess.target)
		e.mu.Unlock()
		sess.finish()
		return
	}

	t := easeOutCubic(p)
	h.SetBounds(platform.Rect{
		X:      lerpRound(sess.start.X, sess.target.X, t),
		Y:      lerpRound(sess.start.Y, sess.target.Y, t),
		Width:  sess.target.Width,
		Height: sess.target.Height,
	})
	e.sched.AfterFunc(e.step, func() { e.stepWindow(h, sess) })
	e.mu.Unlock()
}

// usableLocked reports whether the window can still be animated. When it has
// been destroyed, any pending timer for it is cancelled and reclaimed first so
// timers never leak for vanished windows. Caller holds e.mu.
func (e *Engine) usableLocked(h Handle) bool {
	if h == nil {
		return false
	}
	if h.Destroyed() {
		e.cancelPendingLocked(h.ID())
		return false
	}
	return true
}

// cancelPendingLocked removes the window's timer-table entry, stopping its
// timer if one is scheduled. Caller holds e.mu.
func (e *Engine) cancelPendingLocked(id platform.WindowID) {
	entry, ok := e.pending[id]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	delete(e.pending, id)
	e.animating = len(e.pending) > 0
}

func resolveDuration(d *time.Duration, def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return *d
}

func completeNow(fn func()) {
	if fn != nil {
		fn()
	}
}
