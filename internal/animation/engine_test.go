package animation

import (
	"testing"
	"time"

	"github.com/1broseidon/glide/internal/platform"
)

func newTestEngine(sched *fakeScheduler, lookup Lookup) *Engine {
	return New(Config{
		MoveDuration: 300 * time.Millisecond,
		FadeDuration: 250 * time.Millisecond,
		StepInterval: 8 * time.Millisecond,
		Scheduler:    sched,
		Lookup:       lookup,
	})
}

func TestAnimateBounds_MonotonicAndExactCompletion(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 1, bounds: platform.Rect{X: 0, Y: 0, Width: 100, Height: 100}}

	target := platform.Rect{X: 200, Y: 40, Width: 150, Height: 80}
	completions := 0
	e.AnimateBounds(w, FullSpec(target), Options{OnComplete: func() { completions++ }})

	if !e.IsAnimating() {
		t.Fatalf("expected engine to report activity during animation")
	}

	sched.advance(500 * time.Millisecond)

	if w.bounds != target {
		t.Fatalf("expected final bounds %+v, got %+v", target, w.bounds)
	}
	if completions != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions)
	}
	if e.IsAnimating() {
		t.Fatalf("expected activity flag to clear after completion")
	}

	// Every animated field must move monotonically from start toward target,
	// without overshoot.
	prev := w.boundsWrites[0]
	for _, r := range w.boundsWrites[1:] {
		checkTowards(t, "x", prev.X, r.X, target.X)
		checkTowards(t, "y", prev.Y, r.Y, target.Y)
		checkTowards(t, "width", prev.Width, r.Width, target.Width)
		checkTowards(t, "height", prev.Height, r.Height, target.Height)
		prev = r
	}
}

// checkTowards fails when cur moves away from goal relative to prev or passes
// it.
func checkTowards(t *testing.T, field string, prev, cur, goal int) {
	t.Helper()
	if prev <= goal {
		if cur < prev || cur > goal {
			t.Fatalf("%s not monotonic toward target: prev=%d cur=%d goal=%d", field, prev, cur, goal)
		}
		return
	}
	if cur > prev || cur < goal {
		t.Fatalf("%s not monotonic toward target: prev=%d cur=%d goal=%d", field, prev, cur, goal)
	}
}

func TestAnimateBounds_PartialTargetMergesCurrentBounds(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 1, bounds: platform.Rect{X: 10, Y: 20, Width: 300, Height: 200}}

	e.AnimateBounds(w, RectSpec{X: it(110)}, Options{Duration: durPtr(100 * time.Millisecond)})
	sched.advance(200 * time.Millisecond)

	want := platform.Rect{X: 110, Y: 20, Width: 300, Height: 200}
	if w.bounds != want {
		t.Fatalf("expected %+v, got %+v", want, w.bounds)
	}
}

func TestAnimateBounds_SupersedeLastCallWins(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 7, bounds: platform.Rect{Width: 100, Height: 100}}

	targetA := platform.Rect{X: 400, Width: 100, Height: 100}
	targetB := platform.Rect{X: -200, Width: 100, Height: 100}

	e.AnimateBounds(w, FullSpec(targetA), Options{})
	sched.advance(40 * time.Millisecond)

	xAtSupersede := w.bounds.X
	e.AnimateBounds(w, FullSpec(targetB), Options{})
	sched.advance(time.Second)

	if w.bounds != targetB {
		t.Fatalf("expected terminal state %+v, got %+v", targetB, w.bounds)
	}

	// After the supersede the window must never snap back up toward A's
	// target; x only decreases from wherever it was.
	seen := false
	prev := xAtSupersede
	for _, r := range w.boundsWrites {
		if !seen {
			if r.X == xAtSupersede {
				seen = true
			}
			continue
		}
		if r.X > prev {
			t.Fatalf("window moved back toward superseded target: %d after %d", r.X, prev)
		}
		prev = r.X
	}
}

func TestAnimateBounds_StaleStepPerformsNoWrites(t *testing.T) {
	sched := newFakeScheduler()
	sched.stopFails = true // queued steps cannot be unscheduled
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 3, bounds: platform.Rect{Width: 50, Height: 50}}

	e.AnimateBounds(w, RectSpec{X: it(100)}, Options{})
	e.AnimateBounds(w, RectSpec{X: it(-100)}, Options{Duration: durPtr(50 * time.Millisecond)})

	writesBefore := len(w.boundsWrites)
	sched.advance(200 * time.Millisecond)

	if w.bounds.X != -100 {
		t.Fatalf("expected superseding target to win, got x=%d", w.bounds.X)
	}
	// The first animation's queued step fired but must not have written: all
	// writes after the supersede belong to the second session and move toward
	// its target only.
	for _, r := range w.boundsWrites[writesBefore:] {
		if r.X > 0 {
			t.Fatalf("stale step wrote x=%d after supersede", r.X)
		}
	}
}

func TestAnimateOps_DestroyedWindowCompletesWithoutWrites(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 9, destroyed: true}

	completions := 0
	e.AnimateBounds(w, RectSpec{X: it(10)}, Options{OnComplete: func() { completions++ }})
	e.AnimatePosition(w, it(5), nil, Options{OnComplete: func() { completions++ }})
	e.AnimateWindow(w, 1, 2, MoveOptions{OnComplete: func() { completions++ }})
	e.Fade(w, FadeOptions{To: 1, OnComplete: func() { completions++ }})

	if completions != 4 {
		t.Fatalf("expected synchronous completion for every op, got %d", completions)
	}
	if len(w.boundsWrites) != 0 || len(w.opacityWrites) != 0 {
		t.Fatalf("expected zero setter calls, got %d bounds and %d opacity writes",
			len(w.boundsWrites), len(w.opacityWrites))
	}
	if sched.livePending() != 0 {
		t.Fatalf("expected no scheduled steps, got %d", sched.livePending())
	}
}

func TestAnimateBounds_WindowDestroyedMidFlight(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 2, bounds: platform.Rect{Width: 100, Height: 100}}

	completions := 0
	e.AnimateBounds(w, RectSpec{X: it(500)}, Options{OnComplete: func() { completions++ }})
	sched.advance(40 * time.Millisecond)

	w.destroyed = true
	writes := len(w.boundsWrites)
	sched.advance(time.Second)

	if completions != 1 {
		t.Fatalf("expected one completion after mid-flight destruction, got %d", completions)
	}
	if len(w.boundsWrites) != writes {
		t.Fatalf("expected no writes after destruction")
	}
	if e.IsAnimating() {
		t.Fatalf("expected timer table entry to be reclaimed")
	}
	if sched.livePending() != 0 {
		t.Fatalf("expected no leaked timers, got %d", sched.livePending())
	}
}

func TestZeroDuration_SnapsOnFirstEvaluation(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 4, bounds: platform.Rect{Width: 100, Height: 100}}

	completions := 0
	e.AnimateBounds(w, RectSpec{X: it(640), Y: it(480)}, Options{
		Duration:   durPtr(0),
		OnComplete: func() { completions++ },
	})

	// No clock advance: the snap happens on the caller's tick.
	want := platform.Rect{X: 640, Y: 480, Width: 100, Height: 100}
	if w.bounds != want {
		t.Fatalf("expected instant jump to %+v, got %+v", want, w.bounds)
	}
	if completions != 1 {
		t.Fatalf("expected synchronous completion, got %d", completions)
	}
	if sched.livePending() != 0 {
		t.Fatalf("expected no scheduled steps for zero duration")
	}
}

func TestAnimatePosition_UntouchedAxisStaysPut(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 5, bounds: platform.Rect{X: 0, Y: 0, Width: 100, Height: 100}}

	e.AnimatePosition(w, it(200), nil, Options{Duration: durPtr(300 * time.Millisecond)})
	sched.advance(time.Second)

	for _, r := range w.boundsWrites {
		if r.Y != 0 || r.Width != 100 || r.Height != 100 {
			t.Fatalf("unanimated fields changed: %+v", r)
		}
	}
	want := platform.Rect{X: 200, Y: 0, Width: 100, Height: 100}
	if w.bounds != want {
		t.Fatalf("expected final state %+v, got %+v", want, w.bounds)
	}
}

func TestAnimateWindow_SizeOverrideHeldConstant(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 6, bounds: platform.Rect{X: 0, Y: 0, Width: 100, Height: 100}}

	e.AnimateWindow(w, 300, 150, MoveOptions{Size: &platform.Size{Width: 640, Height: 480}})
	sched.advance(time.Second)

	for _, r := range w.boundsWrites {
		if r.Width != 640 || r.Height != 480 {
			t.Fatalf("size override not held: %+v", r)
		}
	}
	want := platform.Rect{X: 300, Y: 150, Width: 640, Height: 480}
	if w.bounds != want {
		t.Fatalf("expected final state %+v, got %+v", want, w.bounds)
	}
}

func TestDestroy_IdempotentAndCancelsEverything(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w1 := &fakeWindow{id: 1, bounds: platform.Rect{Width: 10, Height: 10}}
	w2 := &fakeWindow{id: 2, bounds: platform.Rect{Width: 10, Height: 10}}

	e.AnimateBounds(w1, RectSpec{X: it(100)}, Options{})
	e.AnimateBounds(w2, RectSpec{Y: it(100)}, Options{})

	e.Destroy()
	e.Destroy()

	if e.IsAnimating() {
		t.Fatalf("expected activity flag reset after destroy")
	}
	if sched.livePending() != 0 {
		t.Fatalf("expected zero pending timers after destroy, got %d", sched.livePending())
	}

	// Requests after destroy complete immediately and do not touch windows.
	writes := len(w1.boundsWrites)
	completions := 0
	e.AnimateBounds(w1, RectSpec{X: it(999)}, Options{OnComplete: func() { completions++ }})
	if completions != 1 || len(w1.boundsWrites) != writes {
		t.Fatalf("expected immediate no-op completion after destroy")
	}
}

func it(v int) *int { return intPtr(v) }
