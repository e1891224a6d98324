// Package slideshow is the in-memory form of a parsed deck: the viewbox
// table, the object table and the ordered slides that reference both by id.
package slideshow

import (
	"errors"
	"hash/fnv"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/layout"
)

// ErrSyntax is returned for malformed alignment or colour literals.
var ErrSyntax = errors.New("slideshow: invalid literal")

// DesignSize is the canonical authoring resolution.
var DesignSize = geom.V2(1920, 1080)

// DesignRect is the design space as a rectangle at the origin.
var DesignRect = geom.FromMinSize(geom.Vec2{}, DesignSize)

// ID identifies a viewbox or an object by a hash of its declared name, so
// the same name refers to the same record on every slide.
type ID uint64

// IDOf hashes a declared name.
func IDOf(name string) ID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return ID(h.Sum64())
}

// RefKind tags a ViewboxRef.
type RefKind uint8

const (
	// RefSize is the whole design rectangle.
	RefSize RefKind = iota
	// RefCustom is one segment of a declared viewbox.
	RefCustom
	// RefInherit must be replaced by the parser before resolution.
	RefInherit
)

// ViewboxRef points at a region: either the design rectangle or a segment
// of a named viewbox.
type ViewboxRef struct {
	Kind    RefKind
	Viewbox ID
	Index   int
}

// SizeRef references the design rectangle.
func SizeRef() ViewboxRef { return ViewboxRef{Kind: RefSize} }

// SegmentRef references segment index of viewbox id.
func SegmentRef(id ID, index int) ViewboxRef {
	return ViewboxRef{Kind: RefCustom, Viewbox: id, Index: index}
}

// InheritRef is a placeholder for "same as the previous slide".
func InheritRef() ViewboxRef { return ViewboxRef{Kind: RefInherit} }

// Viewbox is a named region produced by splitting its parent region.
type Viewbox struct {
	ID          ID
	Name        string
	Direction   layout.Direction
	Constraints []layout.Constraint
	Margin      float64
	MarginPer   float64
	Flex        layout.Flex
	Spacing     float64
	SplitOn     ViewboxRef
}

// Layout returns the solver input for this viewbox.
func (v Viewbox) Layout() layout.Layout {
	return layout.Layout{
		Direction:   v.Direction,
		Constraints: v.Constraints,
		Margin:      v.Margin,
		MarginPer:   v.MarginPer,
		Flex:        v.Flex,
		Spacing:     v.Spacing,
	}
}

// Slideshow is the whole deck.
type Slideshow struct {
	Viewboxes map[ID]Viewbox
	Objects   map[ID]Object
	Slides    []Slide
}

// New returns an empty slideshow with its tables allocated.
func New() *Slideshow {
	return &Slideshow{
		Viewboxes: make(map[ID]Viewbox),
		Objects:   make(map[ID]Object),
	}
}

// AddViewbox registers v under the hash of its name and returns its id.
func (s *Slideshow) AddViewbox(v Viewbox) ID {
	v.ID = IDOf(v.Name)
	s.Viewboxes[v.ID] = v
	return v.ID
}

// AddObject registers o under the hash of its name and returns its id.
func (s *Slideshow) AddObject(o Object) ID {
	o.ID = IDOf(o.Name)
	s.Objects[o.ID] = o
	return o.ID
}
