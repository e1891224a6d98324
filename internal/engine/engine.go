package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/director"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/resolver"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/source"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/timeline"
)

// View identifies one output surface of the presenter.
type View int

const (
	ViewMain View = iota
	ViewSpeaker
)

func (v View) String() string {
	if v == ViewSpeaker {
		return "speaker"
	}
	return "main"
}

type Options struct {
	// Workers caps how many slides Export samples at once.
	Workers int
	// Export draws highlights in their settled form.
	Export bool
}

type snapshotKey struct {
	slide   int
	window  geom.Rect
	version uint64
}

type snapshot struct {
	key      snapshotKey
	resolved *resolver.Resolved
}

// Presenter hands out frames for the current slideshow, resolving each
// slide at most once per view, window size and content version.
type Presenter struct {
	mu       sync.Mutex
	show     *slideshow.Slideshow
	version  uint64
	views    map[View]snapshot
	resolver *resolver.Resolver
	media    *source.Cache
	opts     Options
	log      *zap.Logger
}

func NewPresenter(show *slideshow.Slideshow, r *resolver.Resolver, media *source.Cache, opts Options, log *zap.Logger) *Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Presenter{
		show:     show,
		views:    make(map[View]snapshot),
		resolver: r,
		media:    media,
		opts:     opts,
		log:      log.Named("engine"),
	}
}

// Reload swaps in a new slideshow. Every cached snapshot and decoded medium
// is dropped.
func (p *Presenter) Reload(show *slideshow.Slideshow) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.show = show
	p.version++
	if p.media != nil {
		p.media.Invalidate()
	}
	p.log.Debug("Slideshow reloaded", zap.Uint64("version", p.version), zap.Int("slides", len(show.Slides)))
}

// Len returns the number of slides.
func (p *Presenter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.show.Slides)
}

// Advances reports whether slide moves on by itself once elapsed seconds
// have passed.
func (p *Presenter) Advances(slide int, elapsed float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slide < 0 || slide >= len(p.show.Slides) {
		return false
	}
	s := p.show.Slides[slide]
	return s.Next && elapsed >= s.MaxTime
}

// Resolve returns the geometry of slide inside window for view. Past the
// last slide it returns the end screen. A slide that fails to resolve is
// logged and replaced by a frame showing only its background.
func (p *Presenter) Resolve(view View, slide int, window geom.Rect) *resolver.Resolved {
	p.mu.Lock()
	if slide < 0 || slide >= len(p.show.Slides) {
		p.mu.Unlock()
		return resolver.End(window)
	}
	key := snapshotKey{slide: slide, window: window, version: p.version}
	if snap, ok := p.views[view]; ok && snap.key == key {
		p.mu.Unlock()
		return snap.resolved
	}
	show := p.show
	p.mu.Unlock()

	// Resolved outside the lock so views do not wait on each other.
	s := show.Slides[slide]
	start := time.Now()
	res, err := p.resolver.Resolve(show, s, window)
	if err != nil {
		p.log.Warn("Slide failed to resolve, showing a blank frame",
			zap.Stringer("view", view),
			zap.Int("slide", slide),
			zap.Error(err))
		res = blank(s, window)
	} else {
		p.log.Debug("Slide resolved",
			zap.Stringer("view", view),
			zap.Int("slide", slide),
			zap.Duration("took", time.Since(start)))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// A reload while resolving makes res stale; hand it out but do not keep it.
	if p.version == key.version {
		p.views[view] = snapshot{key: key, resolved: res}
	}
	return res
}

func blank(s slideshow.Slide, window geom.Rect) *resolver.Resolved {
	res := resolver.End(window)
	res.Background = s.Background
	res.MaxTime = s.Background.Duration
	return res
}

// Frame evaluates slide t seconds after it became current.
func (p *Presenter) Frame(view View, slide int, window geom.Rect, t float64) timeline.Frame {
	return timeline.Evaluate(p.Resolve(view, slide, window), t, timeline.Options{Export: p.opts.Export})
}

// Export samples every slide at fps until it settles. Slides are processed
// concurrently; unlike Frame, a slide that fails to resolve fails the export.
func (p *Presenter) Export(ctx context.Context, window geom.Rect, fps float64) ([]director.Samples, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", fps)
	}

	p.mu.Lock()
	show := p.show
	p.mu.Unlock()

	out := make([]director.Samples, len(show.Slides))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i := range show.Slides {
		g.Go(func() error {
			res, err := p.resolver.Resolve(show, show.Slides[i], window)
			if err != nil {
				return fmt.Errorf("slide %d: %w", i, err)
			}
			frames, err := p.sample(ctx, res, fps)
			if err != nil {
				return fmt.Errorf("slide %d: %w", i, err)
			}
			out[i] = director.Samples{Slide: i, FPS: fps, Frames: frames}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.log.Info("Export sampled", zap.Int("slides", len(out)), zap.Float64("fps", fps))
	return out, nil
}

// sample evaluates res on the fps grid and once more at MaxTime, so the
// last frame is always settled.
func (p *Presenter) sample(ctx context.Context, res *resolver.Resolved, fps float64) ([]timeline.Frame, error) {
	opts := timeline.Options{Export: p.opts.Export}
	n := int(math.Ceil(res.MaxTime * fps))
	frames := make([]timeline.Frame, 0, n+1)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frames = append(frames, timeline.Evaluate(res, float64(i)/fps, opts))
	}
	return append(frames, timeline.Evaluate(res, res.MaxTime, opts)), nil
}
