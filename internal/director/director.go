// Package director turns YAML decks into slideshows and writes resolved
// geometry back out for inspection.
package director

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/layout"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

// qrSize is the pixel size QR objects are rendered at.
const qrSize = 512

// Director builds slideshows from decks. Image paths resolve against
// BaseDir.
type Director struct {
	BaseDir string
	log     *zap.Logger
}

// NewDirector creates a new Director reading media relative to baseDir.
func NewDirector(baseDir string, log *zap.Logger) *Director {
	if log == nil {
		log = zap.NewNop()
	}
	return &Director{BaseDir: baseDir, log: log.Named("director")}
}

// Load reads the deck at path and builds it with media relative to the
// deck's directory.
func Load(path string, log *zap.Logger) (*slideshow.Slideshow, error) {
	deck, err := ReadDeck(path)
	if err != nil {
		return nil, err
	}
	return NewDirector(filepath.Dir(path), log).Build(deck)
}

// Build converts deck into a slideshow.
func (d *Director) Build(deck *Deck) (*slideshow.Slideshow, error) {
	show := slideshow.New()

	for _, decl := range deck.Viewboxes {
		vb, err := buildViewbox(decl)
		if err != nil {
			return nil, fmt.Errorf("viewbox %q: %w", decl.Name, err)
		}
		show.AddViewbox(vb)
	}

	for _, decl := range deck.Objects {
		payload, err := d.buildPayload(decl)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", decl.Name, err)
		}
		show.AddObject(slideshow.Object{Name: decl.Name, Payload: payload})
	}

	prevBackground := slideshow.DefaultBackground
	for i, decl := range deck.Slides {
		slide, err := buildSlide(decl, prevBackground)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		prevBackground = slide.Background.Color
		show.Slides = append(show.Slides, slide)
	}

	d.log.Info("Deck built",
		zap.Int("viewboxes", len(show.Viewboxes)),
		zap.Int("objects", len(show.Objects)),
		zap.Int("slides", len(show.Slides)),
	)
	return show, nil
}

func buildViewbox(decl ViewboxDecl) (slideshow.Viewbox, error) {
	dir := layout.Horizontal
	var err error
	if decl.Direction != "" {
		if dir, err = layout.ParseDirection(decl.Direction); err != nil {
			return slideshow.Viewbox{}, err
		}
	}
	flex, err := layout.ParseFlex(decl.Flex)
	if err != nil {
		return slideshow.Viewbox{}, err
	}
	constraints := make([]layout.Constraint, 0, len(decl.Constraints))
	for _, lit := range decl.Constraints {
		c, err := layout.ParseConstraint(lit)
		if err != nil {
			return slideshow.Viewbox{}, err
		}
		constraints = append(constraints, c)
	}
	splitOn := slideshow.SizeRef()
	if decl.SplitOn != "" {
		splitOn, err = parseRef(decl.SplitOn)
		if err != nil {
			return slideshow.Viewbox{}, err
		}
	}
	return slideshow.Viewbox{
		Name:        decl.Name,
		Direction:   dir,
		Constraints: constraints,
		Margin:      decl.Margin,
		MarginPer:   decl.MarginPer,
		Flex:        flex,
		Spacing:     decl.Spacing,
		SplitOn:     splitOn,
	}, nil
}

func (d *Director) buildPayload(decl ObjectDecl) (slideshow.Payload, error) {
	switch decl.Kind {
	case "text", "":
		align, err := slideshow.ParseTextAlign(decl.Align)
		if err != nil {
			return nil, err
		}
		return slideshow.Text{
			Value:      decl.Value,
			FontSize:   decl.FontSize,
			LineHeight: decl.LineHeight,
			Align:      align,
		}, nil

	case "image":
		tint, err := colorOr(decl.Tint, slideshow.White)
		if err != nil {
			return nil, err
		}
		return slideshow.Image{
			URI:   decl.Path,
			Data:  d.readMedia(decl.Path),
			Tint:  tint,
			Scale: decl.Scale,
		}, nil

	case "qr":
		png, err := qrcode.Encode(decl.Value, qrcode.Medium, qrSize)
		if err != nil {
			return nil, fmt.Errorf("qr: %w", err)
		}
		return slideshow.Image{URI: "qr:" + decl.Value, Data: png, Tint: slideshow.White, Scale: decl.Scale}, nil

	case "rect":
		c, err := colorOr(decl.Color, slideshow.White)
		if err != nil {
			return nil, err
		}
		return slideshow.Rect{Color: c, Height: decl.Height}, nil

	case "spinner":
		return slideshow.Spinner{}, nil
	}
	return nil, fmt.Errorf("%w: object kind %q", slideshow.ErrSyntax, decl.Kind)
}

// readMedia loads an image file. A missing file leaves the object with no
// data, which the media cache turns into a placeholder.
func (d *Director) readMedia(path string) []byte {
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		level := zap.WarnLevel
		if errors.Is(err, fs.ErrNotExist) {
			level = zap.InfoLevel
		}
		d.log.Log(level, "media unavailable, using placeholder", zap.String("path", path), zap.Error(err))
		return nil
	}
	return data
}

func buildSlide(decl SlideDecl, prevBackground slideshow.Color) (slideshow.Slide, error) {
	objects := make([]slideshow.SlideObj, 0, len(decl.Objects))
	for _, p := range decl.Objects {
		so, err := buildPlacement(p)
		if err != nil {
			return slideshow.Slide{}, fmt.Errorf("placement %q: %w", p.Object, err)
		}
		objects = append(objects, so)
	}

	slide := slideshow.NewSlide(objects)
	slide.Next = decl.Next
	if decl.Time > 0 {
		slide.SetTime(decl.Time)
	}
	if decl.Stagger > 0 {
		slide.Stagger(decl.Stagger)
	}

	bg, err := colorOr(decl.Background, slideshow.DefaultBackground)
	if err != nil {
		return slideshow.Slide{}, err
	}
	slide.Background.Color = bg
	if decl.BackgroundFade > 0 {
		slide.FadeBackground(prevBackground, decl.BackgroundFade)
	}

	if slide.Actions, err = buildActions(decl.Actions); err != nil {
		return slideshow.Slide{}, err
	}
	if slide.Transition, err = buildActions(decl.Transition); err != nil {
		return slideshow.Slide{}, err
	}
	if decl.Notes != "" {
		slide.Actions = append(slide.Actions, slideshow.SpeakerNotes{Text: decl.Notes})
	}
	return slide, nil
}

// buildPlacement fills in the loader conveniences: an omitted from starts
// where the object ends, and the state follows from whether it moves.
func buildPlacement(p PlacementDecl) (slideshow.SlideObj, error) {
	to, err := parseEndpoint(p.To)
	if err != nil {
		return slideshow.SlideObj{}, err
	}
	from := to
	if p.From != "" {
		if from, err = parseEndpoint(p.From); err != nil {
			return slideshow.SlideObj{}, err
		}
	}

	so := slideshow.SlideObj{Object: slideshow.IDOf(p.Object), From: from, To: to}
	switch {
	case p.State != "":
		if so.State, err = slideshow.ParseObjState(p.State); err != nil {
			return slideshow.SlideObj{}, err
		}
	case so.Moves():
		so.State = slideshow.Entering
	default:
		so.State = slideshow.OnScreen
	}
	return so, nil
}

func buildActions(decls []ActionDecl) ([]slideshow.Action, error) {
	var out []slideshow.Action
	for i, a := range decls {
		act, err := buildAction(a)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, act)
	}
	return out, nil
}

func buildAction(a ActionDecl) (slideshow.Action, error) {
	switch a.Kind {
	case "highlight":
		c, err := colorOr(a.Color, slideshow.DefaultHighlight)
		if err != nil {
			return nil, err
		}
		h := slideshow.Highlight{Object: a.Object, Persist: a.Persist, Color: c}
		if a.Range != nil {
			r := slideshow.TextRange(*a.Range)
			h.Range = &r
		}
		return h, nil

	case "line":
		c, err := colorOr(a.Color, slideshow.White)
		if err != nil {
			return nil, err
		}
		l := slideshow.Line{Objects: a.Objects, Color: c}
		for i, lit := range a.Anchors {
			l.Anchors[i] = geom.CenterCenter
			if lit == "" {
				continue
			}
			if l.Anchors[i], err = slideshow.ParseAlign(lit); err != nil {
				return nil, err
			}
		}
		return l, nil

	case "notes":
		return slideshow.SpeakerNotes{Text: a.Text}, nil
	}
	return nil, fmt.Errorf("%w: action kind %q", slideshow.ErrSyntax, a.Kind)
}

func colorOr(lit string, def slideshow.Color) (slideshow.Color, error) {
	if lit == "" {
		return def, nil
	}
	return slideshow.ParseColor(lit)
}

// parseEndpoint reads a region reference followed by a two-character
// alignment.
func parseEndpoint(s string) (slideshow.Endpoint, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return slideshow.Endpoint{}, fmt.Errorf("%w: endpoint %q", slideshow.ErrSyntax, s)
	}
	align, err := slideshow.ParseAlign(s[len(s)-2:])
	if err != nil {
		return slideshow.Endpoint{}, err
	}
	ref, err := parseRef(s[:len(s)-2])
	if err != nil {
		return slideshow.Endpoint{}, err
	}
	return slideshow.Endpoint{Align: align, Viewbox: ref}, nil
}

// parseRef reads "size" or "name[index]".
func parseRef(s string) (slideshow.ViewboxRef, error) {
	if s == "size" {
		return slideshow.SizeRef(), nil
	}
	open := strings.LastIndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return slideshow.ViewboxRef{}, fmt.Errorf("%w: viewbox reference %q", slideshow.ErrSyntax, s)
	}
	index, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil || index < 0 {
		return slideshow.ViewboxRef{}, fmt.Errorf("%w: viewbox index in %q", slideshow.ErrSyntax, s)
	}
	return slideshow.SegmentRef(slideshow.IDOf(s[:open]), index), nil
}
