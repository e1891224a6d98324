// Package resolver turns a slide into concrete geometry for one output
// rectangle: viewbox regions, object placements and action overlays.
package resolver

import (
	"errors"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/source"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/text"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInheritUnresolved = errors.New("inherited viewbox reference reached the resolver")
	ErrCycle             = errors.New("split_on cycle")
	ErrNotText           = errors.New("text range on a non-text object")
)

// Resolved is one slide laid out for one output rectangle. It is read-only
// once returned.
type Resolved struct {
	Viewboxes    map[slideshow.ID]Layouts `yaml:"viewboxes"`
	Objects      []ResolvedSlideObj       `yaml:"objects"`
	Actions      []ResolvedAction         `yaml:"actions"`
	SpeakerNotes string                   `yaml:"speaker_notes,omitempty"`
	Background   slideshow.Background     `yaml:"background"`
	MaxTime      float64                  `yaml:"max_time"`
	Next         bool                     `yaml:"next,omitempty"`
	Window       geom.Rect                `yaml:"window"`
	DrawSize     geom.Rect                `yaml:"draw_size"`
}

// End is what the presenter shows past the last slide.
func End(window geom.Rect) *Resolved {
	return &Resolved{
		Background: slideshow.Background{Color: slideshow.DefaultBackground},
		Window:     window,
		DrawSize:   DrawSize(window),
	}
}

// DrawSize letterboxes window to the design aspect ratio.
func DrawSize(window geom.Rect) geom.Rect {
	size := geom.FitAspect(slideshow.DesignSize, window.Size())
	return geom.CenterCenter.AlignSizeWithinRect(size, window)
}

// ResolvedSlideObj is one placed object. From and To are the object's
// footprint anchored into its two regions.
type ResolvedSlideObj struct {
	Object     slideshow.ID       `yaml:"object"`
	Name       string             `yaml:"name"`
	Payload    ResolvedPayload    `yaml:"payload"`
	From       geom.Rect          `yaml:"from"`
	To         geom.Rect          `yaml:"to"`
	ScaledTime [2]float64         `yaml:"scaled_time,flow"`
	State      slideshow.ObjState `yaml:"state"`
}

// ResolvedPayload is the drawable part of a placed object.
type ResolvedPayload interface {
	resolvedPayload()
}

type ResolvedText struct {
	Value      string              `yaml:"value"`
	FontSize   float64             `yaml:"font_size"`
	LineHeight float64             `yaml:"line_height"`
	Align      slideshow.TextAlign `yaml:"align"`
	Layout     *text.Layout        `yaml:"-"`
}

type ResolvedMedia struct {
	source.Entry `yaml:",inline"`
}

type ResolvedRect struct {
	Color slideshow.Color `yaml:"color"`
	Size  geom.Vec2       `yaml:"size"`
}

type ResolvedSpinner struct {
	Side float64 `yaml:"side"`
}

func (ResolvedText) resolvedPayload()    {}
func (ResolvedMedia) resolvedPayload()   {}
func (ResolvedRect) resolvedPayload()    {}
func (ResolvedSpinner) resolvedPayload() {}

// ResolvedAction is an overlay ready for the timeline.
type ResolvedAction interface {
	resolvedAction()
}

// HighlightAction boxes part of a text object. Rect is relative to the
// object's top-left corner, which moves from Locations[0] to Locations[1].
type HighlightAction struct {
	Object     int             `yaml:"object"`
	Rect       geom.Rect       `yaml:"rect"`
	Locations  [2]geom.Vec2    `yaml:"locations"`
	ScaledTime [2]float64      `yaml:"scaled_time,flow"`
	Persist    bool            `yaml:"persist,omitempty"`
	Color      slideshow.Color `yaml:"color"`
}

// LineAction joins anchor points of two objects. Points[i] holds object
// i's anchor at the start and at the end of its window.
type LineAction struct {
	Objects     [2]int             `yaml:"objects,flow"`
	Points      [2][2]geom.Vec2    `yaml:"points"`
	ScaledTimes [2][2]float64      `yaml:"scaled_times"`
	State       slideshow.ObjState `yaml:"state"`
	// Scale maps design-unit stroke widths to pixels.
	Scale float64         `yaml:"scale"`
	Color slideshow.Color `yaml:"color"`
}

func (HighlightAction) resolvedAction() {}
func (LineAction) resolvedAction()      {}
