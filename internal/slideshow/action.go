package slideshow

import (
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// Action is a secondary overlay or annotation attached to a slide.
type Action interface {
	action()
}

// TextRange is [[line, column], [line, column]] inside a text object.
type TextRange [2][2]int

// Highlight marks a text object, or part of it, with a translucent box.
type Highlight struct {
	// Object is an index into the slide's object list.
	Object  int
	Range   *TextRange
	Persist bool
	Color   Color
}

// Line connects anchor points of two objects on the same slide.
type Line struct {
	Objects [2]int
	Anchors [2]geom.Align2
	Color   Color
}

// SpeakerNotes carries text for the presenter view.
type SpeakerNotes struct {
	Text string
}

func (Highlight) action()    {}
func (Line) action()         {}
func (SpeakerNotes) action() {}
