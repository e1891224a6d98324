package slideshow

import (
	"fmt"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// DefaultDuration is the length of every object's transition window unless
// the slide sets its own time.
const DefaultDuration = 0.5

// Background is the slide's fill colour and an optional fade from the
// previous slide's colour.
type Background struct {
	Color Color
	// From and Duration describe the fade; Duration == 0 means none.
	From     Color
	Duration float64
}

// At returns the background colour t seconds into the slide.
func (b Background) At(t float64) Color {
	if b.Duration <= 0 {
		return b.Color
	}
	return b.From.Blend(b.Color, t/b.Duration)
}

// Slide is one step of the deck.
type Slide struct {
	Objects []SlideObj
	Actions []Action
	// Transition holds actions played while this slide is entered.
	Transition []Action
	Background Background
	// MaxTime is when the last object settles.
	MaxTime float64
	// Next advances to the following slide once MaxTime has elapsed.
	Next bool
}

// NewSlide returns a slide with default timing for every object.
func NewSlide(objects []SlideObj) Slide {
	for i := range objects {
		objects[i].ScaledTime = [2]float64{0, DefaultDuration}
	}
	return Slide{
		Objects:    objects,
		Background: Background{Color: DefaultBackground},
		MaxTime:    DefaultDuration,
	}
}

// SetTime stretches every object's window to t seconds.
func (s *Slide) SetTime(t float64) {
	delta := t - DefaultDuration
	s.MaxTime += delta
	for i := range s.Objects {
		s.Objects[i].ScaledTime[1] += delta
	}
}

// Stagger offsets the start of each moving object by step seconds after
// the previous moving object.
func (s *Slide) Stagger(step float64) {
	start := 0.0
	for i := range s.Objects {
		if !s.Objects[i].Moves() {
			continue
		}
		s.Objects[i].ScaledTime[0] = start
		s.MaxTime += step
		start += step
	}
}

// FadeBackground fades from the previous colour over d seconds.
func (s *Slide) FadeBackground(from Color, d float64) {
	s.Background.From = from
	s.Background.Duration = d
	s.MaxTime = max(s.MaxTime, d)
}

// ParseAlign reads a two-character anchor such as "^^", "..", "<_".
// Each character is one of "^" up, "_" down, "<" left, ">" right, "." centre.
func ParseAlign(s string) (geom.Align2, error) {
	if len(s) != 2 {
		return geom.Align2{}, fmt.Errorf("%w: alignment %q", ErrSyntax, s)
	}
	first, ok1 := alignDirs[s[0]]
	second, ok2 := alignDirs[s[1]]
	if !ok1 || !ok2 {
		return geom.Align2{}, fmt.Errorf("%w: alignment %q", ErrSyntax, s)
	}
	return alignTable[first][second], nil
}

const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
	dirCenter
)

var alignDirs = map[byte]int{'^': dirUp, '_': dirDown, '<': dirLeft, '>': dirRight, '.': dirCenter}

// alignTable[first][second]; opposite pairs cancel out to the centre.
var alignTable = [5][5]geom.Align2{
	dirUp:     {geom.CenterTop, geom.CenterCenter, geom.LeftTop, geom.RightTop, geom.CenterTop},
	dirDown:   {geom.CenterCenter, geom.CenterBottom, geom.LeftBottom, geom.RightBottom, geom.CenterBottom},
	dirLeft:   {geom.LeftTop, geom.LeftBottom, geom.LeftCenter, geom.CenterCenter, geom.LeftCenter},
	dirRight:  {geom.RightTop, geom.RightBottom, geom.CenterCenter, geom.RightCenter, geom.RightCenter},
	dirCenter: {geom.CenterTop, geom.CenterBottom, geom.LeftCenter, geom.RightCenter, geom.CenterCenter},
}
