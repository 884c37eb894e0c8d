package animation

import (
	"sort"
	"time"

	"github.com/1broseidon/glide/internal/platform"
)

// fakeScheduler is a deterministic Scheduler driven by advance(). When
// stopFails is set, Stop is a no-op; this simulates a step that was already
// queued for execution when its animation was superseded.
type fakeScheduler struct {
	now       time.Time
	timers    []*fakeTimer
	stopFails bool
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
	sched   *fakeScheduler
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{now: time.Unix(1000, 0)}
}

func (s *fakeScheduler) Now() time.Time {
	return s.now
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{at: s.now.Add(d), fn: fn, sched: s}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.sched.stopFails {
		return false
	}
	t.stopped = true
	return true
}

// advance moves the clock forward, firing due timers in time order. Timers
// scheduled by fired callbacks participate if they fall within the window.
func (s *fakeScheduler) advance(d time.Duration) {
	deadline := s.now.Add(d)
	for {
		next := s.nextDue(deadline)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = deadline
}

func (s *fakeScheduler) nextDue(deadline time.Time) *fakeTimer {
	sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].at.Before(s.timers[j].at) })
	for _, t := range s.timers {
		if t.fired || t.stopped {
			continue
		}
		if !t.at.After(deadline) {
			return t
		}
	}
	return nil
}

func (s *fakeScheduler) livePending() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type fakeWindow struct {
	id        platform.WindowID
	bounds    platform.Rect
	opacity   float64
	destroyed bool

	boundsWrites  []platform.Rect
	opacityWrites []float64
}

func (w *fakeWindow) ID() platform.WindowID { return w.id }

func (w *fakeWindow) Bounds() platform.Rect { return w.bounds }

func (w *fakeWindow) Opacity() float64 { return w.opacity }

func (w *fakeWindow) Destroyed() bool { return w.destroyed }

func (w *fakeWindow) SetBounds(r platform.Rect) {
	w.bounds = r
	w.boundsWrites = append(w.boundsWrites, r)
}

func (w *fakeWindow) SetOpacity(o float64) {
	w.opacity = o
	w.opacityWrites = append(w.opacityWrites, o)
}

type fakeLookup map[string]Handle

func (l fakeLookup) Lookup(name string) (Handle, bool) {
	h, ok := l[name]
	return h, ok
}

func intPtr(v int) *int { return &v }

func durPtr(d time.Duration) *time.Duration { return &d }

func floatPtr(v float64) *float64 { return &v }
