package animation

import (
	"math"
	"time"

	"github.com/1broseidon/glide/internal/platform"
)

// easeOutCubic maps linear progress [0,1] to perceptual progress: fast initial
// motion decelerating into the target (1 - (1-p)^3).
func easeOutCubic(p float64) float64 {
	u := 1 - p
	return 1 - u*u*u
}

// progress returns elapsed/duration clamped to [0,1]. A non-positive duration
// is treated as already complete, so zero-duration animations snap.
func progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpRound interpolates between integer pixel values, rounding to the
// nearest pixel.
func lerpRound(a, b int, t float64) int {
	return int(math.Round(lerp(float64(a), float64(b), t)))
}

func lerpRect(a, b platform.Rect, t float64) platform.Rect {
	return platform.Rect{
		X:      lerpRound(a.X, b.X, t),
		Y:      lerpRound(a.Y, b.Y, t),
		Width:  lerpRound(a.Width, b.Width, t),
		Height: lerpRound(a.Height, b.Height, t),
	}
}
