package slideshow

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// Object is a drawable declared once and placed on any number of slides.
type Object struct {
	ID      ID
	Name    string
	Payload Payload
}

// Payload is the type-specific part of an object.
type Payload interface {
	payload()
}

// TextAlign aligns wrapped lines inside a text block.
type TextAlign uint8

const (
	TextLeft TextAlign = iota
	TextCenter
	TextRight
	TextJustified
)

var textAlignNames = map[string]TextAlign{
	"left":      TextLeft,
	"center":    TextCenter,
	"right":     TextRight,
	"justified": TextJustified,
}

// ParseTextAlign reads a text alignment name; empty means left.
func ParseTextAlign(s string) (TextAlign, error) {
	if s == "" {
		return TextLeft, nil
	}
	a, ok := textAlignNames[s]
	if !ok {
		return TextLeft, fmt.Errorf("%w: text alignment %q", ErrSyntax, s)
	}
	return a, nil
}

// Text is a block of paragraphs separated by newlines.
type Text struct {
	Value string
	// FontSize is in design units.
	FontSize float64
	// LineHeight is a multiple of the font size; zero means 1.2.
	LineHeight float64
	Align      TextAlign
}

// Image is raster, animated or document media. Data is supplied by the
// loader; the core never touches the filesystem.
type Image struct {
	URI  string
	Data []byte
	Tint Color
	// Scale, when set, is the box in design units the media is fitted into.
	Scale *geom.Vec2
}

// Rect is a filled bar spanning its viewbox's width.
type Rect struct {
	Color Color
	// Height is in design units.
	Height float64
}

// Spinner is an indeterminate progress indicator.
type Spinner struct{}

func (Text) payload()    {}
func (Image) payload()   {}
func (Rect) payload()    {}
func (Spinner) payload() {}

// ObjState is where an object is in its slide transition.
type ObjState uint8

const (
	Exiting ObjState = iota
	OnScreen
	Entering
)

func (s ObjState) String() string {
	switch s {
	case Entering:
		return "entering"
	case Exiting:
		return "exiting"
	default:
		return "on-screen"
	}
}

// MarshalYAML writes the state by name.
func (s ObjState) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *ObjState) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseObjState(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseObjState reads "entering", "exiting" or "on-screen".
func ParseObjState(s string) (ObjState, error) {
	switch s {
	case "entering":
		return Entering, nil
	case "exiting":
		return Exiting, nil
	case "on-screen", "onscreen":
		return OnScreen, nil
	}
	return OnScreen, fmt.Errorf("%w: state %q", ErrSyntax, s)
}

// Endpoint is an anchor inside a region.
type Endpoint struct {
	Align   geom.Align2
	Viewbox ViewboxRef
}

// SlideObj places an object on one slide.
type SlideObj struct {
	Object ID
	From   Endpoint
	To     Endpoint
	// ScaledTime is [start offset, duration] in seconds.
	ScaledTime [2]float64
	State      ObjState
}

// Moves reports whether the object travels during the transition.
func (o SlideObj) Moves() bool {
	return o.From != o.To
}
