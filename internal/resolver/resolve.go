package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/source"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/text"
)

// TextShaper measures and wraps text. Implementations must be safe for
// concurrent use.
type TextShaper interface {
	Shape(value string, p text.Params) (*text.Layout, error)
}

// MediaProvider returns decoded media for an image object. Implementations
// must be safe for concurrent use.
type MediaProvider interface {
	Lookup(id slideshow.ID, img slideshow.Image) (source.Entry, error)
}

// Defaults fill in text metrics an object leaves unset.
type Defaults struct {
	FontSize   float64
	LineHeight float64
}

// Resolver lays out slides. It holds no per-pass state, so one Resolver
// can serve several views at once.
type Resolver struct {
	shaper   TextShaper
	media    MediaProvider
	defaults Defaults
	log      *zap.Logger
}

func New(shaper TextShaper, media MediaProvider, defaults Defaults, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if defaults.FontSize <= 0 {
		defaults.FontSize = 48
	}
	if defaults.LineHeight <= 0 {
		defaults.LineHeight = text.DefaultLineHeight
	}
	return &Resolver{shaper: shaper, media: media, defaults: defaults, log: log}
}

// Resolve lays out slide for window. Actions are resolved in order: the
// slide's own, then its transition actions.
func (r *Resolver) Resolve(show *slideshow.Slideshow, slide slideshow.Slide, window geom.Rect) (*Resolved, error) {
	drawSize := DrawSize(window)
	vc := NewViewboxCache(show.Viewboxes, drawSize, r.log)

	out := &Resolved{
		Objects:    make([]ResolvedSlideObj, 0, len(slide.Objects)),
		Background: slide.Background,
		MaxTime:    slide.MaxTime,
		Next:       slide.Next,
		Window:     window,
		DrawSize:   drawSize,
	}

	for i, so := range slide.Objects {
		obj, err := r.resolveObject(show, vc, so, drawSize)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		out.Objects = append(out.Objects, obj)
	}

	actions := make([]slideshow.Action, 0, len(slide.Actions)+len(slide.Transition))
	actions = append(actions, slide.Actions...)
	actions = append(actions, slide.Transition...)
	for i, a := range actions {
		if err := resolveAction(out, a, r.log); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
	}

	out.Viewboxes = vc.Layouts()
	r.log.Debug("Slide resolved",
		zap.Int("objects", len(out.Objects)),
		zap.Int("actions", len(out.Actions)),
		zap.Int("viewboxes", len(out.Viewboxes)),
		zap.Stringer("window", window),
	)
	return out, nil
}

func (r *Resolver) resolveObject(show *slideshow.Slideshow, vc *ViewboxCache, so slideshow.SlideObj, drawSize geom.Rect) (ResolvedSlideObj, error) {
	obj, ok := show.Objects[so.Object]
	if !ok {
		return ResolvedSlideObj{}, fmt.Errorf("%w: object %x", ErrNotFound, uint64(so.Object))
	}

	from, err := vc.Resolve(so.From.Viewbox)
	if err != nil {
		return ResolvedSlideObj{}, fmt.Errorf("%s from: %w", obj.Name, err)
	}
	to, err := vc.Resolve(so.To.Viewbox)
	if err != nil {
		return ResolvedSlideObj{}, fmt.Errorf("%s to: %w", obj.Name, err)
	}

	payload, fromSize, toSize, err := r.footprint(obj, from, to, drawSize)
	if err != nil {
		return ResolvedSlideObj{}, fmt.Errorf("%s: %w", obj.Name, err)
	}

	return ResolvedSlideObj{
		Object:     obj.ID,
		Name:       obj.Name,
		Payload:    payload,
		From:       so.From.Align.AlignSizeWithinRect(fromSize, from.Adjusted),
		To:         so.To.Align.AlignSizeWithinRect(toSize, to.Adjusted),
		ScaledTime: so.ScaledTime,
		State:      so.State,
	}, nil
}

// footprint sizes obj for both of its regions. Authored metrics scale by
// the target region's design-to-pixel factor.
func (r *Resolver) footprint(obj slideshow.Object, from, to Splits, drawSize geom.Rect) (ResolvedPayload, geom.Vec2, geom.Vec2, error) {
	factor := to.Factor()

	switch p := obj.Payload.(type) {
	case slideshow.Text:
		fontSize := p.FontSize
		if fontSize <= 0 {
			fontSize = r.defaults.FontSize
		}
		fontSize *= factor.X
		lh := p.LineHeight
		if lh <= 0 {
			lh = r.defaults.LineHeight
		}
		lh *= fontSize

		l, err := r.shaper.Shape(p.Value, text.Params{
			FontSize:   fontSize,
			LineHeight: lh,
			MaxWidth:   to.Adjusted.Width(),
			Align:      p.Align,
		})
		if err != nil {
			return nil, geom.Vec2{}, geom.Vec2{}, err
		}
		payload := ResolvedText{Value: p.Value, FontSize: fontSize, LineHeight: lh, Align: p.Align, Layout: l}
		return payload, l.Size, l.Size, nil

	case slideshow.Image:
		e, err := r.media.Lookup(obj.ID, p)
		if err != nil {
			return nil, geom.Vec2{}, geom.Vec2{}, err
		}
		fromAvail, toAvail := from.Adjusted.Size(), to.Adjusted.Size()
		if e.Scale != nil {
			scaled := e.Scale.MulVec(factor)
			e.Scale = &scaled
			fromAvail, toAvail = scaled, scaled
		}
		return ResolvedMedia{Entry: e}, geom.FitAspect(e.Size, fromAvail), geom.FitAspect(e.Size, toAvail), nil

	case slideshow.Rect:
		size := geom.V2(to.Adjusted.Width(), p.Height*drawSize.Height()/slideshow.DesignSize.Y)
		return ResolvedRect{Color: p.Color, Size: size}, size, size, nil

	case slideshow.Spinner:
		ts := to.Adjusted.Size()
		side := min(ts.X, ts.Y)
		return ResolvedSpinner{Side: side}, geom.Splat(side), geom.Splat(side), nil

	default:
		return nil, geom.Vec2{}, geom.Vec2{}, fmt.Errorf("unknown payload %T", obj.Payload)
	}
}
