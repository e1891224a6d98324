package director

import (
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// Deck is the YAML form of a slideshow.
type Deck struct {
	Version   string        `yaml:"version"`
	Viewboxes []ViewboxDecl `yaml:"viewboxes"`
	Objects   []ObjectDecl  `yaml:"objects"`
	Slides    []SlideDecl   `yaml:"slides"`
}

// ViewboxDecl declares a region. SplitOn is "size" or "name[index]";
// Constraints use the literal forms "1:2", "50%", "100~", "10-", "10+", "1#".
type ViewboxDecl struct {
	Name        string   `yaml:"name"`
	SplitOn     string   `yaml:"split_on"`
	Direction   string   `yaml:"direction"`
	Constraints []string `yaml:"constraints"`
	Margin      float64  `yaml:"margin,omitempty"`
	MarginPer   float64  `yaml:"margin_per,omitempty"`
	Flex        string   `yaml:"flex,omitempty"`
	Spacing     float64  `yaml:"spacing,omitempty"`
}

// ObjectDecl declares a drawable. Kind is text, image, qr, rect or spinner.
type ObjectDecl struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// text and qr
	Value      string  `yaml:"value,omitempty"`
	FontSize   float64 `yaml:"font_size,omitempty"`
	LineHeight float64 `yaml:"line_height,omitempty"`
	Align      string  `yaml:"align,omitempty"`

	// image
	Path  string     `yaml:"path,omitempty"`
	Tint  string     `yaml:"tint,omitempty"`
	Scale *geom.Vec2 `yaml:"scale,omitempty"`

	// rect
	Color  string  `yaml:"color,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// SlideDecl is one slide. Placements are written "object: to" or with an
// explicit from; endpoints read "viewbox[index]" or "size" followed by a
// two-character alignment, e.g. "halves[1].." or "size^^".
type SlideDecl struct {
	Objects    []PlacementDecl `yaml:"objects"`
	Actions    []ActionDecl    `yaml:"actions,omitempty"`
	Transition []ActionDecl    `yaml:"transition,omitempty"`
	Notes      string          `yaml:"notes,omitempty"`

	Time    float64 `yaml:"time,omitempty"`
	Stagger float64 `yaml:"stagger,omitempty"`
	Next    bool    `yaml:"next,omitempty"`

	Background     string  `yaml:"background,omitempty"`
	BackgroundFade float64 `yaml:"background_fade,omitempty"`
}

type PlacementDecl struct {
	Object string `yaml:"object"`
	From   string `yaml:"from,omitempty"`
	To     string `yaml:"to"`
	State  string `yaml:"state,omitempty"`
}

// ActionDecl is a highlight, line or notes action. Object indices address
// the slide's placement list.
type ActionDecl struct {
	Kind    string     `yaml:"kind"`
	Object  int        `yaml:"object,omitempty"`
	Range   *[2][2]int `yaml:"range,omitempty"`
	Persist bool       `yaml:"persist,omitempty"`
	Objects [2]int     `yaml:"objects,omitempty,flow"`
	Anchors [2]string  `yaml:"anchors,omitempty,flow"`
	Color   string     `yaml:"color,omitempty"`
	Text    string     `yaml:"text,omitempty"`
}
