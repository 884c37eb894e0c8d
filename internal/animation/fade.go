package animation

import (
	"sync"
	"time"
)

// fadeSession mirrors session for opacity-only animations. Opacity is not
// rounded.
type fadeSession struct {
	from       float64
	to         float64
	startedAt  time.Time
	duration   time.Duration
	done       sync.Once
	onComplete func()
}

func (s *fadeSession) finish() {
	s.done.Do(func() {
		if s.onComplete != nil {
			s.onComplete()
		}
	})
}

// Fade animates the window's opacity toward opts.To. From defaults to the
// opacity read at start. Fades run outside the timer table: they neither
// cancel nor get cancelled by geometry animations on the same window, so a
// window can fade in while sliding into place.
func (e *Engine) Fade(h Handle, opts FadeOptions) {
	e.mu.Lock()
	if e.closed || !e.usableLocked(h) {
		e.mu.Unlock()
		completeNow(opts.OnComplete)
		return
	}

	from := h.Opacity()
	if opts.From != nil {
		from = *opts.From
	}
	sess := &fadeSession{
		from:       from,
		to:         opts.To,
		startedAt:  e.sched.Now(),
		duration:   resolveDuration(opts.Duration, e.fadeDur),
		onComplete: opts.OnComplete,
	}
	e.mu.Unlock()

	e.stepFade(h, sess)
}

func (e *Engine) stepFade(h Handle, sess *fadeSession) {
	e.mu.Lock()
	if e.closed || !e.usableLocked(h) {
		e.mu.Unlock()
		sess.finish()
		return
	}

	p := progress(e.sched.Now().Sub(sess.startedAt), sess.duration)
	if p >= 1 {
		h.SetOpacity(sess.to)
		e.mu.Unlock()
		sess.finish()
		return
	}

	h.SetOpacity(lerp(sess.from, sess.to, easeOutCubic(p)))
	e.sched.AfterFunc(e.step, func() { e.stepFade(h, sess) })
	e.mu.Unlock()
}
