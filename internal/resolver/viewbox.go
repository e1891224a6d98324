package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/layout"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

// maxDepth bounds split_on chains.
const maxDepth = 64

// sizeMargin insets the synthetic region used for endpoints that reference
// the design rectangle directly.
const sizeMargin = 15

// Splits is one segment in design units and in output pixels.
type Splits struct {
	Unadjusted geom.Rect `yaml:"unadjusted"`
	Adjusted   geom.Rect `yaml:"adjusted"`
}

// Factor is the per-axis scale from design units to output pixels.
func (s Splits) Factor() geom.Vec2 {
	return s.Adjusted.Size().DivVec(s.Unadjusted.Size())
}

// Layouts is every segment of one viewbox.
type Layouts struct {
	Unadjusted []geom.Rect `yaml:"unadjusted"`
	Adjusted   []geom.Rect `yaml:"adjusted"`
}

func (l Layouts) split(index int) (Splits, bool) {
	if index < 0 || index >= len(l.Unadjusted) {
		return Splits{}, false
	}
	return Splits{Unadjusted: l.Unadjusted[index], Adjusted: l.Adjusted[index]}, true
}

// ViewboxCache resolves viewbox references for one resolve pass. It is not
// safe for concurrent use; every pass builds its own.
type ViewboxCache struct {
	viewboxes map[slideshow.ID]slideshow.Viewbox
	drawSize  geom.Rect

	layouts  map[slideshow.ID]Layouts
	visiting map[slideshow.ID]bool
	solves   int

	log *zap.Logger
}

// NewViewboxCache prepares a pass that maps design space onto drawSize.
func NewViewboxCache(viewboxes map[slideshow.ID]slideshow.Viewbox, drawSize geom.Rect, log *zap.Logger) *ViewboxCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewboxCache{
		viewboxes: viewboxes,
		drawSize:  drawSize,
		layouts:   make(map[slideshow.ID]Layouts),
		visiting:  make(map[slideshow.ID]bool),
		log:       log,
	}
}

// Resolve returns the region ref points at.
func (c *ViewboxCache) Resolve(ref slideshow.ViewboxRef) (Splits, error) {
	switch ref.Kind {
	case slideshow.RefSize:
		l := layout.Layout{
			Direction:   layout.Horizontal,
			Constraints: []layout.Constraint{layout.Min(0)},
			Margin:      sizeMargin,
		}
		ls, err := c.resolveLayoutRaw(l, c.base())
		if err != nil {
			return Splits{}, err
		}
		s, _ := ls.split(0)
		return s, nil
	case slideshow.RefCustom:
		return c.resolveLayout(ref.Viewbox, ref.Index, 0)
	default:
		return Splits{}, ErrInheritUnresolved
	}
}

// Layouts returns everything resolved so far, keyed by viewbox id.
func (c *ViewboxCache) Layouts() map[slideshow.ID]Layouts {
	return c.layouts
}

func (c *ViewboxCache) base() Splits {
	return Splits{Unadjusted: slideshow.DesignRect, Adjusted: c.drawSize}
}

func (c *ViewboxCache) resolveLayout(id slideshow.ID, index, depth int) (Splits, error) {
	ls, ok := c.layouts[id]
	if !ok {
		var err error
		ls, err = c.resolveViewbox(id, depth)
		if err != nil {
			return Splits{}, err
		}
	}
	s, ok := ls.split(index)
	if !ok {
		return Splits{}, fmt.Errorf("%w: segment %d of viewbox %x (%d segments)", ErrNotFound, index, uint64(id), len(ls.Unadjusted))
	}
	return s, nil
}

func (c *ViewboxCache) resolveViewbox(id slideshow.ID, depth int) (Layouts, error) {
	if depth > maxDepth || c.visiting[id] {
		return Layouts{}, fmt.Errorf("%w: viewbox %x", ErrCycle, uint64(id))
	}
	vb, ok := c.viewboxes[id]
	if !ok {
		return Layouts{}, fmt.Errorf("%w: viewbox %x", ErrNotFound, uint64(id))
	}

	c.visiting[id] = true
	defer delete(c.visiting, id)

	var parent Splits
	switch vb.SplitOn.Kind {
	case slideshow.RefSize:
		parent = c.base()
	case slideshow.RefCustom:
		var err error
		parent, err = c.resolveLayout(vb.SplitOn.Viewbox, vb.SplitOn.Index, depth+1)
		if err != nil {
			return Layouts{}, fmt.Errorf("viewbox %q: %w", vb.Name, err)
		}
	default:
		return Layouts{}, fmt.Errorf("viewbox %q: %w", vb.Name, ErrInheritUnresolved)
	}

	ls, err := c.resolveLayoutRaw(vb.Layout(), parent)
	if err != nil {
		return Layouts{}, fmt.Errorf("viewbox %q: %w", vb.Name, err)
	}
	c.log.Debug("Viewbox resolved",
		zap.String("viewbox", vb.Name),
		zap.Int("segments", len(ls.Unadjusted)),
		zap.Int("depth", depth),
	)
	c.layouts[id] = ls
	return ls, nil
}

// resolveLayoutRaw splits the parent's design-space rect and maps each
// segment into the draw rect along the split axis' scale.
func (c *ViewboxCache) resolveLayoutRaw(l layout.Layout, parent Splits) (Layouts, error) {
	c.solves++
	unadjusted, err := l.Split(parent.Unadjusted)
	if err != nil {
		return Layouts{}, err
	}

	factor := c.drawSize.Width() / slideshow.DesignSize.X
	if l.Direction == layout.Vertical {
		factor = c.drawSize.Height() / slideshow.DesignSize.Y
	}

	adjusted := make([]geom.Rect, len(unadjusted))
	for i, r := range unadjusted {
		adjusted[i] = r.Scale(factor).Translate(c.drawSize.Min)
	}
	return Layouts{Unadjusted: unadjusted, Adjusted: adjusted}, nil
}
