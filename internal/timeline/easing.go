package timeline

import (
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(p float64) float64

// Linear is the identity easing.
func Linear(p float64) float64 { return p }

// EaseOutCubic decelerates to the end.
func EaseOutCubic(p float64) float64 {
	return 1 - pow(1-p, 3)
}

// EaseOutQuint decelerates harder than EaseOutCubic.
func EaseOutQuint(p float64) float64 {
	return 1 - pow(1-p, 5)
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}

// progress is t/dur clamped to [0, 1]. A window of zero length is already
// finished.
func progress(t, dur float64) float64 {
	if dur <= 0 {
		return 1
	}
	return max(0, min(1, t/dur))
}

// Ease interpolates from -> to at local time t of a dur-long window.
func Ease(f Easing, from, to, t, dur float64) float64 {
	return geom.Lerp(from, to, f(progress(t, dur)))
}

// EaseVec eases both coordinates.
func EaseVec(f Easing, from, to geom.Vec2, t, dur float64) geom.Vec2 {
	return from.Lerp(to, f(progress(t, dur)))
}

// EaseRect eases every coordinate of a rect.
func EaseRect(f Easing, from, to geom.Rect, t, dur float64) geom.Rect {
	return from.Lerp(to, f(progress(t, dur)))
}

// localTime is the time spent inside the window [start, start+dur] at
// global time t, clamped to the window.
func localTime(t float64, window [2]float64) float64 {
	if window[0] >= t {
		return 0
	}
	return max(0, min(t-window[0], window[1]))
}
