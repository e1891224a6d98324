package engine

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/layout"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/resolver"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/source"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/text"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var window = geom.XYWH(0, 0, 1920, 1080)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// newShow returns two slides: a bar entering the bottom half, then a picture
// sitting in the top half for a full second.
func newShow(t *testing.T) *slideshow.Slideshow {
	t.Helper()
	show := slideshow.New()
	v := show.AddViewbox(slideshow.Viewbox{
		Name:        "v",
		Direction:   layout.Vertical,
		Constraints: []layout.Constraint{layout.Ratio(1, 2), layout.Ratio(1, 2)},
		SplitOn:     slideshow.SizeRef(),
	})
	bar := show.AddObject(slideshow.Object{Name: "bar", Payload: slideshow.Rect{Height: 100}})
	pic := show.AddObject(slideshow.Object{Name: "pic", Payload: slideshow.Image{Data: pngBytes(t, 4, 2)}})

	top := slideshow.Endpoint{Align: geom.CenterCenter, Viewbox: slideshow.SegmentRef(v, 0)}
	bottom := slideshow.Endpoint{Align: geom.CenterCenter, Viewbox: slideshow.SegmentRef(v, 1)}

	first := slideshow.NewSlide([]slideshow.SlideObj{{Object: bar, From: top, To: bottom, State: slideshow.Entering}})
	second := slideshow.NewSlide([]slideshow.SlideObj{{Object: pic, From: top, To: top, State: slideshow.OnScreen}})
	second.SetTime(1)
	second.Next = true
	show.Slides = []slideshow.Slide{first, second}
	return show
}

func newPresenter(t *testing.T, show *slideshow.Slideshow, opts Options) (*Presenter, *source.Cache) {
	t.Helper()
	media := source.NewCache(nil, geom.Splat(1))
	r := resolver.New(nil, media, resolver.Defaults{}, nil)
	return NewPresenter(show, r, media, opts, nil), media
}

func TestResolveIsCachedPerView(t *testing.T) {
	p, media := newPresenter(t, newShow(t), Options{})

	main := p.Resolve(ViewMain, 1, window)
	require.Len(t, main.Objects, 1)
	assert.Same(t, main, p.Resolve(ViewMain, 1, window))
	assert.Equal(t, 1, media.Len())

	speaker := p.Resolve(ViewSpeaker, 1, geom.XYWH(0, 0, 640, 360))
	assert.NotSame(t, main, speaker)
	assert.Same(t, main, p.Resolve(ViewMain, 1, window), "speaker view must not evict the main view")

	other := p.Resolve(ViewMain, 0, window)
	assert.NotSame(t, main, other)
	assert.NotSame(t, main, p.Resolve(ViewMain, 1, window))
}

func TestReloadInvalidates(t *testing.T) {
	show := newShow(t)
	p, media := newPresenter(t, show, Options{})

	before := p.Resolve(ViewMain, 1, window)
	require.Equal(t, 1, media.Len())

	p.Reload(show)
	assert.Equal(t, 0, media.Len())

	after := p.Resolve(ViewMain, 1, window)
	assert.NotSame(t, before, after)
	assert.Equal(t, before.Objects[0].To, after.Objects[0].To)
}

func TestResolveFallsBackToBlank(t *testing.T) {
	show := newShow(t)
	broken := slideshow.NewSlide([]slideshow.SlideObj{{Object: slideshow.IDOf("ghost")}})
	broken.Background = slideshow.Background{Color: slideshow.DefaultHighlight}
	show.Slides = append(show.Slides, broken)
	p, _ := newPresenter(t, show, Options{})

	res := p.Resolve(ViewMain, 2, window)
	assert.Empty(t, res.Objects)
	assert.Equal(t, slideshow.DefaultHighlight, res.Background.Color)

	f := p.Frame(ViewMain, 2, window, 0)
	assert.Empty(t, f.Objects)
	assert.Equal(t, slideshow.DefaultHighlight, f.Background)
	assert.True(t, f.Settled)
}

func TestResolvePastTheEnd(t *testing.T) {
	p, _ := newPresenter(t, newShow(t), Options{})

	for _, slide := range []int{-1, 2, 10} {
		res := p.Resolve(ViewMain, slide, window)
		assert.Empty(t, res.Objects)
		assert.Equal(t, window, res.Window)
	}
}

func TestFrame(t *testing.T) {
	p, _ := newPresenter(t, newShow(t), Options{})
	res := p.Resolve(ViewMain, 0, window)

	start := p.Frame(ViewMain, 0, window, 0)
	assert.Equal(t, res.Objects[0].From, start.Objects[0].Rect)
	assert.Equal(t, 0.0, start.Objects[0].Opacity)

	end := p.Frame(ViewMain, 0, window, 0.5)
	assert.InDelta(t, res.Objects[0].To.Min.Y, end.Objects[0].Rect.Min.Y, 1e-9)
	assert.Equal(t, 1.0, end.Objects[0].Opacity)
	assert.True(t, end.Settled)
}

func TestAdvances(t *testing.T) {
	p, _ := newPresenter(t, newShow(t), Options{})

	assert.Equal(t, 2, p.Len())
	assert.False(t, p.Advances(0, 5), "first slide waits for input")
	assert.False(t, p.Advances(1, 0.5))
	assert.True(t, p.Advances(1, 1))
	assert.False(t, p.Advances(5, 100))
}

func TestExport(t *testing.T) {
	p, _ := newPresenter(t, newShow(t), Options{Workers: 2, Export: true})

	samples, err := p.Export(context.Background(), window, 30)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	// 0.5s at 30fps is 15 grid frames plus the settled one.
	assert.Equal(t, 0, samples[0].Slide)
	assert.Len(t, samples[0].Frames, 16)
	assert.Len(t, samples[1].Frames, 31)

	for _, s := range samples {
		last := s.Frames[len(s.Frames)-1]
		assert.True(t, last.Settled)
		assert.False(t, s.Frames[0].Settled)
		for i := 1; i < len(s.Frames); i++ {
			assert.Greater(t, s.Frames[i].Time, s.Frames[i-1].Time)
		}
	}
}

func TestExportErrors(t *testing.T) {
	show := newShow(t)
	show.Slides = append(show.Slides, slideshow.NewSlide([]slideshow.SlideObj{{Object: slideshow.IDOf("ghost")}}))
	p, _ := newPresenter(t, show, Options{Workers: 4})

	_, err := p.Export(context.Background(), window, 30)
	assert.ErrorIs(t, err, resolver.ErrNotFound)
	assert.ErrorContains(t, err, "slide 2")

	_, err = p.Export(context.Background(), window, 0)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Export(ctx, window, 30)
	assert.ErrorIs(t, err, context.Canceled)
}

// gatedShaper blocks every Shape call until release is closed.
type gatedShaper struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gatedShaper) Shape(value string, p text.Params) (*text.Layout, error) {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.release
	return &text.Layout{FontSize: p.FontSize, LineHeight: p.LineHeight, Size: geom.V2(100, p.LineHeight)}, nil
}

func TestViewsResolveInParallel(t *testing.T) {
	show := slideshow.New()
	v := show.AddViewbox(slideshow.Viewbox{
		Name:        "v",
		Direction:   layout.Vertical,
		Constraints: []layout.Constraint{layout.Ratio(1, 1)},
		SplitOn:     slideshow.SizeRef(),
	})
	title := show.AddObject(slideshow.Object{Name: "title", Payload: slideshow.Text{Value: "Hello"}})
	ep := slideshow.Endpoint{Align: geom.CenterCenter, Viewbox: slideshow.SegmentRef(v, 0)}
	show.Slides = []slideshow.Slide{slideshow.NewSlide([]slideshow.SlideObj{{Object: title, From: ep, To: ep, State: slideshow.OnScreen}})}

	shaper := &gatedShaper{entered: make(chan struct{}, 2), release: make(chan struct{})}
	media := source.NewCache(nil, geom.Splat(1))
	p := NewPresenter(show, resolver.New(shaper, media, resolver.Defaults{}, nil), media, Options{}, nil)

	var wg sync.WaitGroup
	results := make([]*resolver.Resolved, 2)
	for i, view := range []View{ViewMain, ViewSpeaker} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.Resolve(view, 0, window)
		}()
	}

	for range 2 {
		select {
		case <-shaper.entered:
		case <-time.After(5 * time.Second):
			close(shaper.release)
			wg.Wait()
			t.Fatal("second view waited for the first to finish resolving")
		}
	}
	close(shaper.release)
	wg.Wait()

	for _, res := range results {
		require.Len(t, res.Objects, 1)
	}
	assert.Same(t, results[0], p.Resolve(ViewMain, 0, window))
	assert.Same(t, results[1], p.Resolve(ViewSpeaker, 0, window))
}

func TestReloadDuringResolveIsNotCached(t *testing.T) {
	show := slideshow.New()
	v := show.AddViewbox(slideshow.Viewbox{
		Name:        "v",
		Direction:   layout.Vertical,
		Constraints: []layout.Constraint{layout.Ratio(1, 1)},
		SplitOn:     slideshow.SizeRef(),
	})
	title := show.AddObject(slideshow.Object{Name: "title", Payload: slideshow.Text{Value: "Hello"}})
	ep := slideshow.Endpoint{Align: geom.CenterCenter, Viewbox: slideshow.SegmentRef(v, 0)}
	show.Slides = []slideshow.Slide{slideshow.NewSlide([]slideshow.SlideObj{{Object: title, From: ep, To: ep, State: slideshow.OnScreen}})}

	shaper := &gatedShaper{entered: make(chan struct{}, 1), release: make(chan struct{})}
	media := source.NewCache(nil, geom.Splat(1))
	p := NewPresenter(show, resolver.New(shaper, media, resolver.Defaults{}, nil), media, Options{}, nil)

	done := make(chan *resolver.Resolved)
	go func() { done <- p.Resolve(ViewMain, 0, window) }()
	<-shaper.entered
	p.Reload(show)
	close(shaper.release)
	stale := <-done

	require.Len(t, stale.Objects, 1)
	assert.NotSame(t, stale, p.Resolve(ViewMain, 0, window))
}
