// Package text measures and wraps text blocks into glyph geometry. It does
// not rasterise anything.
package text

import (
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// Glyph is one positioned glyph, relative to the top-left of its block.
type Glyph struct {
	Rune rune    `yaml:"rune"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
}

// Run is one visual line after wrapping.
type Run struct {
	Glyphs []Glyph `yaml:"glyphs"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
}

// Paragraph is one source line, possibly wrapped into several runs.
type Paragraph struct {
	Runs []Run `yaml:"runs"`
}

// Layout is the shaped form of a text block.
type Layout struct {
	Paragraphs []Paragraph `yaml:"paragraphs"`
	FontSize   float64     `yaml:"font_size"`
	LineHeight float64     `yaml:"line_height"`
	// Size is the bounding size of all runs.
	Size geom.Vec2 `yaml:"size"`
}

// GlyphRect boxes the glyph at column col of paragraph line. Columns past
// the end clamp to the last glyph. It reports false when the paragraph does
// not exist or has no glyphs.
func (l *Layout) GlyphRect(line, col int) (geom.Rect, bool) {
	if l == nil || line < 0 || line >= len(l.Paragraphs) || col < 0 {
		return geom.Rect{}, false
	}
	var last *Glyph
	seen := 0
	for ri := range l.Paragraphs[line].Runs {
		run := &l.Paragraphs[line].Runs[ri]
		for gi := range run.Glyphs {
			last = &run.Glyphs[gi]
			seen++
			if seen > col {
				return l.box(last), true
			}
		}
	}
	if last == nil {
		return geom.Rect{}, false
	}
	return l.box(last), true
}

func (l *Layout) box(g *Glyph) geom.Rect {
	return geom.FromMinSize(geom.V2(g.X, g.Y), geom.V2(g.W, l.LineHeight))
}

// Lines counts visual lines.
func (l *Layout) Lines() int {
	n := 0
	for _, p := range l.Paragraphs {
		n += len(p.Runs)
	}
	return n
}
