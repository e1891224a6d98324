package text

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

// DefaultLineHeight is the line height multiplier used when a text object
// does not set one.
const DefaultLineHeight = 1.2

// Params controls one shaping call. Sizes are in output pixels.
type Params struct {
	FontSize   float64
	LineHeight float64
	MaxWidth   float64
	Align      slideshow.TextAlign
}

// maxFaces bounds the face cache. Window resizes scale every font size, so
// sizes accumulate over a session.
const maxFaces = 32

// Shaper is a shared shaping context. Faces are not safe for concurrent
// use, so every call holds the lock while it measures.
type Shaper struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewShaper returns a shaper backed by the Go Regular font.
func NewShaper() (*Shaper, error) {
	return NewShaperFromTTF(goregular.TTF)
}

// NewShaperFromTTF returns a shaper for an arbitrary TrueType/OpenType font.
func NewShaperFromTTF(ttf []byte) (*Shaper, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Shaper{font: f, faces: make(map[float64]font.Face)}, nil
}

func (s *Shaper) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	if len(s.faces) >= maxFaces {
		s.dropFaces()
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("face at %gpx: %w", size, err)
	}
	s.faces[size] = f
	return f, nil
}

// Reset drops cached faces, for example after the deck's fonts change.
func (s *Shaper) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropFaces()
}

func (s *Shaper) dropFaces() {
	for _, f := range s.faces {
		_ = f.Close()
	}
	s.faces = make(map[float64]font.Face)
}

// Shape wraps value to p.MaxWidth and positions every glyph.
func (s *Shaper) Shape(value string, p Params) (*Layout, error) {
	if p.FontSize <= 0 {
		return &Layout{LineHeight: p.LineHeight}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	face, err := s.face(p.FontSize)
	if err != nil {
		return nil, err
	}

	out := &Layout{FontSize: p.FontSize, LineHeight: p.LineHeight}
	top := 0.0
	for _, line := range strings.Split(value, "\n") {
		var para Paragraph
		for _, wrapped := range wrap(face, line, p.MaxWidth) {
			run := shapeRun(face, wrapped)
			run.Top = top
			for i := range run.Glyphs {
				run.Glyphs[i].Y = top
			}
			para.Runs = append(para.Runs, run)
			out.Size.X = max(out.Size.X, run.Width)
			top += p.LineHeight
		}
		out.Paragraphs = append(out.Paragraphs, para)
	}
	out.Size.Y = top

	alignRuns(out, p.Align)
	return out, nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func measure(face font.Face, s string) float64 {
	return toFloat(font.MeasureString(face, s))
}

// wrap breaks line at spaces so that no run exceeds maxWidth. A single word
// wider than maxWidth gets a run of its own.
func wrap(face font.Face, line string, maxWidth float64) []string {
	words := strings.Split(line, " ")
	if maxWidth <= 0 || len(words) <= 1 {
		return []string{line}
	}

	var runs []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if measure(face, candidate) > maxWidth && current != "" {
			runs = append(runs, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(runs, current)
}

func shapeRun(face font.Face, s string) Run {
	var run Run
	x := fixed.Int26_6(0)
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			x += face.Kern(prev, r)
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance('�')
		}
		run.Glyphs = append(run.Glyphs, Glyph{Rune: r, X: toFloat(x), W: toFloat(adv)})
		x += adv
		prev = r
	}
	run.Width = toFloat(x)
	return run
}

func alignRuns(l *Layout, align slideshow.TextAlign) {
	for pi := range l.Paragraphs {
		for ri := range l.Paragraphs[pi].Runs {
			run := &l.Paragraphs[pi].Runs[ri]
			var dx float64
			switch align {
			case slideshow.TextCenter:
				dx = (l.Size.X - run.Width) / 2
			case slideshow.TextRight:
				dx = l.Size.X - run.Width
			}
			if dx == 0 {
				continue
			}
			for gi := range run.Glyphs {
				run.Glyphs[gi].X += dx
			}
		}
	}
}
