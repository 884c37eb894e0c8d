package animation

import "time"

// Timer is a handle to a scheduled callback. Stop reports whether the
// callback was prevented from running.
type Timer interface {
	Stop() bool
}

// Scheduler provides the engine's notion of time and deferred execution.
// The daemon uses the wall clock; tests drive a manual implementation.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type wallClock struct{}

// NewWallClock returns a Scheduler backed by the real clock and time.AfterFunc.
func NewWallClock() Scheduler {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
