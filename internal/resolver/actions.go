package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

// minHighlightWindow is the shortest window a highlight animates over;
// anything shorter collapses to [0, 0].
const minHighlightWindow = 0.1

func resolveAction(out *Resolved, a slideshow.Action, log *zap.Logger) error {
	switch a := a.(type) {
	case slideshow.Highlight:
		h, err := resolveHighlight(out.Objects, a, log)
		if err != nil {
			return err
		}
		out.Actions = append(out.Actions, h)
	case slideshow.Line:
		l, err := resolveLine(out.Objects, a, out.DrawSize)
		if err != nil {
			return err
		}
		out.Actions = append(out.Actions, l)
	case slideshow.SpeakerNotes:
		out.SpeakerNotes = a.Text
	default:
		return fmt.Errorf("unknown action %T", a)
	}
	return nil
}

func objectAt(objects []ResolvedSlideObj, i int) (*ResolvedSlideObj, error) {
	if i < 0 || i >= len(objects) {
		return nil, fmt.Errorf("%w: object index %d of %d", ErrNotFound, i, len(objects))
	}
	return &objects[i], nil
}

// resolveHighlight boxes the highlighted part of an object. A text range
// outside the shaped text highlights nothing rather than failing the slide.
func resolveHighlight(objects []ResolvedSlideObj, h slideshow.Highlight, log *zap.Logger) (HighlightAction, error) {
	obj, err := objectAt(objects, h.Object)
	if err != nil {
		return HighlightAction{}, err
	}

	rect := geom.FromMinSize(geom.Vec2{}, obj.To.Size())
	if h.Range != nil {
		t, ok := obj.Payload.(ResolvedText)
		if !ok {
			return HighlightAction{}, fmt.Errorf("%w: %s", ErrNotText, obj.Name)
		}
		start, ok1 := t.Layout.GlyphRect(h.Range[0][0], h.Range[0][1])
		end, ok2 := t.Layout.GlyphRect(h.Range[1][0], h.Range[1][1])
		if ok1 && ok2 {
			rect = start.Union(end)
		} else {
			log.Warn("Highlight range is outside the text",
				zap.String("object", obj.Name),
				zap.Any("range", *h.Range))
			rect = geom.Rect{}
		}
	}

	window := obj.ScaledTime
	if window[1] < minHighlightWindow {
		window = [2]float64{}
	}

	return HighlightAction{
		Object:     h.Object,
		Rect:       rect,
		Locations:  [2]geom.Vec2{obj.From.Min, obj.To.Min},
		ScaledTime: window,
		Persist:    h.Persist,
		Color:      h.Color,
	}, nil
}

func resolveLine(objects []ResolvedSlideObj, l slideshow.Line, drawSize geom.Rect) (LineAction, error) {
	out := LineAction{
		Objects: l.Objects,
		Scale:   drawSize.Width() / slideshow.DesignSize.X,
		Color:   l.Color,
	}
	for i, idx := range l.Objects {
		obj, err := objectAt(objects, idx)
		if err != nil {
			return LineAction{}, err
		}
		out.Points[i] = [2]geom.Vec2{
			l.Anchors[i].PosInRect(obj.From),
			l.Anchors[i].PosInRect(obj.To),
		}
		out.ScaledTimes[i] = obj.ScaledTime
		out.State = obj.State
	}
	return out, nil
}
