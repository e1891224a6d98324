// Package timeline samples a resolved slide at a point in time. Sampling
// never mutates the resolved slide, so one snapshot can be sampled from
// several goroutines.
package timeline

import (
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/resolver"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

// lineWidth is the stroke width of connecting lines in design units.
const lineWidth = 2.5

// Options change how overlays are sampled.
type Options struct {
	// Export draws highlights in their settled state, for still output.
	Export bool
}

// ObjectFrame is one object at one instant.
type ObjectFrame struct {
	Index   int                `yaml:"index"`
	Name    string             `yaml:"name"`
	Rect    geom.Rect          `yaml:"rect"`
	Opacity float64            `yaml:"opacity"`
	State   slideshow.ObjState `yaml:"state"`
}

type HighlightFrame struct {
	Object int             `yaml:"object"`
	Rect   geom.Rect       `yaml:"rect"`
	Color  slideshow.Color `yaml:"color"`
}

type LineFrame struct {
	From  geom.Vec2       `yaml:"from"`
	To    geom.Vec2       `yaml:"to"`
	Width float64         `yaml:"width"`
	Color slideshow.Color `yaml:"color"`
}

// Frame is everything a renderer needs to draw one instant of a slide.
type Frame struct {
	Time         float64          `yaml:"time"`
	Background   slideshow.Color  `yaml:"background"`
	Objects      []ObjectFrame    `yaml:"objects"`
	Highlights   []HighlightFrame `yaml:"highlights,omitempty"`
	Lines        []LineFrame      `yaml:"lines,omitempty"`
	SpeakerNotes string           `yaml:"speaker_notes,omitempty"`
	// Settled is set once every object and overlay has finished moving.
	Settled bool `yaml:"settled"`
}

// Evaluate samples r at t seconds after the slide became current.
func Evaluate(r *resolver.Resolved, t float64, opts Options) Frame {
	f := Frame{
		Time:         t,
		Background:   r.Background.At(t),
		Objects:      make([]ObjectFrame, 0, len(r.Objects)),
		SpeakerNotes: r.SpeakerNotes,
		Settled:      t >= r.MaxTime,
	}

	for i := range r.Objects {
		f.Objects = append(f.Objects, evaluateObject(i, &r.Objects[i], t))
	}

	for _, a := range r.Actions {
		switch a := a.(type) {
		case resolver.HighlightAction:
			f.Highlights = append(f.Highlights, evaluateHighlight(a, t, opts))
		case resolver.LineAction:
			f.Lines = append(f.Lines, evaluateLine(a, t))
		}
	}
	return f
}

func evaluateObject(i int, o *resolver.ResolvedSlideObj, t float64) ObjectFrame {
	local := localTime(t, o.ScaledTime)
	dur := o.ScaledTime[1]
	return ObjectFrame{
		Index:   i,
		Name:    o.Name,
		Rect:    EaseRect(EaseOutCubic, o.From, o.To, local, dur),
		Opacity: ramp(o.State, local, dur),
		State:   o.State,
	}
}

// ramp is the opacity of an object in state s.
func ramp(s slideshow.ObjState, local, dur float64) float64 {
	switch s {
	case slideshow.Entering:
		return Ease(EaseOutCubic, 0, 1, local, dur)
	case slideshow.Exiting:
		return Ease(EaseOutCubic, 1, 0, local, dur)
	default:
		return 1
	}
}

// evaluateHighlight sweeps the box open along x. Unless it persists the
// left edge follows, so the box closes again at the end of the window.
func evaluateHighlight(h resolver.HighlightAction, t float64, opts Options) HighlightFrame {
	start, dur := h.ScaledTime[0], h.ScaledTime[1]
	elapsed := 0.0
	if start < t {
		elapsed = t - start
	}
	settled := h.Persist || opts.Export

	at := dur
	if settled {
		at = elapsed
	}
	pos := EaseVec(EaseOutCubic, h.Locations[0], h.Locations[1], at, dur)

	rect := h.Rect
	if !settled {
		rect.Min.X = Ease(Linear, h.Rect.Min.X, h.Rect.Max.X, elapsed, dur)
	}
	rect.Max.X = Ease(EaseOutQuint, h.Rect.Min.X, h.Rect.Max.X, elapsed, dur)

	return HighlightFrame{Object: h.Object, Rect: rect.Translate(pos), Color: h.Color}
}

// evaluateLine draws from the first object's anchor towards the second's,
// growing on entry and shrinking on exit.
func evaluateLine(l resolver.LineAction, t float64) LineFrame {
	var points [2]geom.Vec2
	var locals [2]float64
	for i := range points {
		locals[i] = localTime(t, l.ScaledTimes[i])
		points[i] = EaseVec(EaseOutCubic, l.Points[i][0], l.Points[i][1], locals[i], l.ScaledTimes[i][1])
	}

	y := ramp(l.State, locals[1], l.ScaledTimes[1][1])
	return LineFrame{
		From:  points[0],
		To:    points[0].Lerp(points[1], y),
		Width: lineWidth * l.Scale,
		Color: l.Color.MultiplyAlpha(y),
	}
}
