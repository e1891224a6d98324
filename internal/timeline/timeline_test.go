package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/layout"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/resolver"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestEasing(t *testing.T) {
	for name, f := range map[string]Easing{"linear": Linear, "cubic": EaseOutCubic, "quint": EaseOutQuint} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0.0, f(0))
			assert.Equal(t, 1.0, f(1))
			assert.Greater(t, f(0.5), 0.0)
			assert.Less(t, f(0.5), 1.0)
		})
	}
	assert.Greater(t, EaseOutQuint(0.3), EaseOutCubic(0.3))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-12)

	assert.Equal(t, 10.0, Ease(Linear, 0, 10, 3, 0), "zero-length window is finished")
	assert.Equal(t, 10.0, Ease(Linear, 0, 10, 7, 5), "past the end clamps")
	assert.Equal(t, 0.0, Ease(Linear, 0, 10, -1, 5), "before the start clamps")
}

func TestLocalTime(t *testing.T) {
	w := [2]float64{0.25, 0.5}
	assert.Equal(t, 0.0, localTime(0, w))
	assert.Equal(t, 0.0, localTime(0.25, w))
	assert.InDelta(t, 0.25, localTime(0.5, w), 1e-12)
	assert.Equal(t, 0.5, localTime(3, w))
}

func object(state slideshow.ObjState, from, to geom.Rect) resolver.ResolvedSlideObj {
	return resolver.ResolvedSlideObj{
		Payload:    resolver.ResolvedRect{},
		From:       from,
		To:         to,
		ScaledTime: [2]float64{0, 0.5},
		State:      state,
	}
}

func TestObjectStates(t *testing.T) {
	from := geom.XYWH(0, 0, 100, 50)
	to := geom.XYWH(400, 300, 100, 50)
	r := &resolver.Resolved{
		Objects: []resolver.ResolvedSlideObj{
			object(slideshow.Entering, from, to),
			object(slideshow.Exiting, from, to),
			object(slideshow.OnScreen, to, to),
		},
		MaxTime: 0.5,
	}

	start := Evaluate(r, 0, Options{})
	assert.Equal(t, from, start.Objects[0].Rect)
	assert.Equal(t, 0.0, start.Objects[0].Opacity)
	assert.Equal(t, from, start.Objects[1].Rect)
	assert.Equal(t, 1.0, start.Objects[1].Opacity)
	assert.False(t, start.Settled)

	end := Evaluate(r, 0.5, Options{})
	assert.Empty(t, cmp.Diff(to, end.Objects[0].Rect, approx))
	assert.Equal(t, 1.0, end.Objects[0].Opacity)
	assert.Empty(t, cmp.Diff(to, end.Objects[1].Rect, approx))
	assert.Equal(t, 0.0, end.Objects[1].Opacity)
	assert.True(t, end.Settled)

	for _, at := range []float64{0, 0.1, 0.25, 0.5, 10} {
		f := Evaluate(r, at, Options{})
		assert.Equal(t, to, f.Objects[2].Rect)
		assert.Equal(t, 1.0, f.Objects[2].Opacity)
	}
}

func TestStaggeredWindow(t *testing.T) {
	from := geom.XYWH(0, 0, 10, 10)
	to := geom.XYWH(100, 0, 10, 10)
	o := object(slideshow.Entering, from, to)
	o.ScaledTime = [2]float64{0.25, 0.5}
	r := &resolver.Resolved{Objects: []resolver.ResolvedSlideObj{o}, MaxTime: 0.75}

	assert.Equal(t, from, Evaluate(r, 0.2, Options{}).Objects[0].Rect)
	mid := Evaluate(r, 0.5, Options{}).Objects[0]
	assert.Greater(t, mid.Rect.Min.X, 0.0)
	assert.Less(t, mid.Rect.Min.X, 100.0)
	assert.Empty(t, cmp.Diff(to, Evaluate(r, 0.75, Options{}).Objects[0].Rect, approx))
}

// Vertical halves, an object entering from the top half's top edge to the
// centre of the bottom half, sampled a quarter second in.
func TestEnteringScenario(t *testing.T) {
	show := slideshow.New()
	v := show.AddViewbox(slideshow.Viewbox{
		Name:        "v",
		Direction:   layout.Vertical,
		Constraints: []layout.Constraint{layout.Ratio(1, 2), layout.Ratio(1, 2)},
		SplitOn:     slideshow.SizeRef(),
	})
	box := show.AddObject(slideshow.Object{Name: "box", Payload: slideshow.Rect{Height: 100}})
	slide := slideshow.NewSlide([]slideshow.SlideObj{{
		Object: box,
		From:   slideshow.Endpoint{Align: geom.CenterTop, Viewbox: slideshow.SegmentRef(v, 0)},
		To:     slideshow.Endpoint{Align: geom.CenterCenter, Viewbox: slideshow.SegmentRef(v, 1)},
		State:  slideshow.Entering,
	}})

	r, err := resolver.New(nil, nil, resolver.Defaults{}, nil).Resolve(show, slide, geom.XYWH(0, 0, 1920, 1080))
	require.NoError(t, err)

	o := r.Objects[0]
	require.Less(t, o.From.Min.Y, o.To.Min.Y)

	f := Evaluate(r, 0.25, Options{}).Objects[0]
	assert.Greater(t, f.Rect.Min.Y, o.From.Min.Y)
	assert.Less(t, f.Rect.Min.Y, o.To.Min.Y)
	assert.Greater(t, f.Opacity, 0.0)
	assert.Less(t, f.Opacity, 1.0)
}

func TestHighlight(t *testing.T) {
	h := resolver.HighlightAction{
		Rect:       geom.XYWH(0, 0, 100, 20),
		Locations:  [2]geom.Vec2{geom.V2(0, 0), geom.V2(50, 50)},
		ScaledTime: [2]float64{0, 0.5},
		Color:      slideshow.DefaultHighlight,
	}
	r := &resolver.Resolved{Actions: []resolver.ResolvedAction{h}}

	t.Run("transient sweep closes", func(t *testing.T) {
		start := Evaluate(r, 0, Options{}).Highlights[0]
		assert.Equal(t, 0.0, start.Rect.Width())
		assert.Equal(t, geom.V2(50, 50), start.Rect.Min)

		mid := Evaluate(r, 0.25, Options{}).Highlights[0]
		assert.Greater(t, mid.Rect.Width(), 0.0)

		end := Evaluate(r, 0.5, Options{}).Highlights[0]
		assert.InDelta(t, 0, end.Rect.Width(), 1e-9)
	})

	t.Run("persistent stays open", func(t *testing.T) {
		p := h
		p.Persist = true
		r := &resolver.Resolved{Actions: []resolver.ResolvedAction{p}}

		start := Evaluate(r, 0, Options{}).Highlights[0]
		assert.Equal(t, geom.V2(0, 0), start.Rect.Min)

		end := Evaluate(r, 0.5, Options{}).Highlights[0]
		assert.Empty(t, cmp.Diff(geom.XYWH(50, 50, 100, 20), end.Rect, approx))
	})

	t.Run("export settles like persistent", func(t *testing.T) {
		end := Evaluate(r, 0.5, Options{Export: true}).Highlights[0]
		assert.Empty(t, cmp.Diff(geom.XYWH(50, 50, 100, 20), end.Rect, approx))
	})
}

func TestLine(t *testing.T) {
	l := resolver.LineAction{
		Points: [2][2]geom.Vec2{
			{geom.V2(0, 0), geom.V2(0, 0)},
			{geom.V2(100, 0), geom.V2(100, 100)},
		},
		ScaledTimes: [2][2]float64{{0, 0.5}, {0, 0.5}},
		State:       slideshow.Entering,
		Scale:       0.5,
		Color:       slideshow.White,
	}
	r := &resolver.Resolved{Actions: []resolver.ResolvedAction{l}}

	start := Evaluate(r, 0, Options{}).Lines[0]
	assert.Equal(t, start.From, start.To)
	assert.Equal(t, 0.0, start.Color.A)
	assert.Equal(t, 1.25, start.Width)

	end := Evaluate(r, 0.5, Options{}).Lines[0]
	assert.Empty(t, cmp.Diff(geom.V2(100, 100), end.To, approx))
	assert.InDelta(t, 1.0, end.Color.A, 1e-9)

	l.State = slideshow.OnScreen
	r.Actions[0] = l
	still := Evaluate(r, 0, Options{}).Lines[0]
	assert.Equal(t, geom.V2(100, 0), still.To)
	assert.Equal(t, 1.0, still.Color.A)
}

func TestEvaluateIsPure(t *testing.T) {
	r := &resolver.Resolved{
		Objects: []resolver.ResolvedSlideObj{object(slideshow.Entering, geom.XYWH(0, 0, 1, 1), geom.XYWH(5, 5, 1, 1))},
		Actions: []resolver.ResolvedAction{resolver.HighlightAction{Rect: geom.XYWH(0, 0, 4, 4), ScaledTime: [2]float64{0, 0.5}}},
		Background: slideshow.Background{
			Color:    slideshow.DefaultBackground,
			From:     slideshow.White,
			Duration: 1,
		},
		SpeakerNotes: "notes",
	}
	before := *r
	before.Objects = append([]resolver.ResolvedSlideObj(nil), r.Objects...)

	f := Evaluate(r, 0.3, Options{})
	assert.Equal(t, "notes", f.SpeakerNotes)
	assert.NotEqual(t, slideshow.White.Hex(), f.Background.Hex())
	assert.Equal(t, before.Objects, r.Objects)
	assert.Equal(t, before.Background, r.Background)
}
