package animation

import (
	"testing"
	"time"

	"github.com/1broseidon/glide/internal/platform"
)

func TestFade_MonotonicToExactTarget(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 1, opacity: 0}

	completions := 0
	e.Fade(w, FadeOptions{To: 1, OnComplete: func() { completions++ }})
	sched.advance(time.Second)

	if w.opacity != 1 {
		t.Fatalf("expected final opacity 1, got %v", w.opacity)
	}
	if completions != 1 {
		t.Fatalf("expected one completion, got %d", completions)
	}
	prev := -1.0
	for _, o := range w.opacityWrites {
		if o < prev || o > 1 {
			t.Fatalf("non-monotonic opacity frame %v after %v", o, prev)
		}
		prev = o
	}
}

func TestFade_FromOverridesCurrentOpacity(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 1, opacity: 0.8}

	e.Fade(w, FadeOptions{From: floatPtr(0), To: 0.5, Duration: durPtr(100 * time.Millisecond)})

	if len(w.opacityWrites) == 0 || w.opacityWrites[0] != 0 {
		t.Fatalf("expected first frame from the override, got %v", w.opacityWrites)
	}
	sched.advance(time.Second)
	if w.opacity != 0.5 {
		t.Fatalf("expected final opacity 0.5, got %v", w.opacity)
	}
}

func TestFade_RunsConcurrentlyWithBoundsAnimation(t *testing.T) {
	sched := newFakeScheduler()
	e := newTestEngine(sched, nil)
	w := &fakeWindow{id: 1, bounds: platform.Rect{Width: 100, Height: 100}}

	e.Fade(w, FadeOptions{To: 1})
	e.AnimateBounds(w, RectSpec{X: it(100)}, Options{})
	// A superseding geometry animation must not cancel the fade.
	e.AnimateBounds(w, RectSpec{X: it(200)}, Options{})
	sched.advance(time.Second)

	if w.opacity != 1 {
		t.Fatalf("fade did not complete alongside bounds animation: opacity %v", w.opacity)
	}
	if w.bounds.X != 200 {
		t.Fatalf("bounds animation did not complete: %+v", w.bounds)
	}
}

func TestAnimateLayout_SkipsAbsentAndDestroyedWindows(t *testing.T) {
	sched := newFakeScheduler()
	a := &fakeWindow{id: 1, bounds: platform.Rect{Width: 100, Height: 100}}
	dead := &fakeWindow{id: 2, destroyed: true}
	e := newTestEngine(sched, fakeLookup{"a": a, "dead": dead})

	e.AnimateLayout(map[string]RectSpec{
		"a":       {X: it(50), Y: it(60)},
		"dead":    {X: it(1)},
		"missing": {X: it(2)},
	}, true, Options{})
	sched.advance(time.Second)

	want := platform.Rect{X: 50, Y: 60, Width: 100, Height: 100}
	if a.bounds != want {
		t.Fatalf("expected %+v, got %+v", want, a.bounds)
	}
	if len(dead.boundsWrites) != 0 {
		t.Fatalf("destroyed window must not be written")
	}
}

func TestAnimateLayout_ImmediateWhenNotAnimated(t *testing.T) {
	sched := newFakeScheduler()
	a := &fakeWindow{id: 1, bounds: platform.Rect{Width: 100, Height: 100}}
	e := newTestEngine(sched, fakeLookup{"a": a})

	e.AnimateLayout(map[string]RectSpec{"a": {X: it(300)}}, false, Options{})

	if a.bounds.X != 300 {
		t.Fatalf("expected immediate apply, got %+v", a.bounds)
	}
	if len(a.boundsWrites) != 1 {
		t.Fatalf("expected a single write, got %d", len(a.boundsWrites))
	}
	if sched.livePending() != 0 {
		t.Fatalf("expected no scheduled steps for immediate apply")
	}
}
