// Package source decodes the media embedded in image objects far enough to
// know their natural size and kind, and caches the result per object.
package source

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// ErrUnsupportedMedia is returned for bytes in no known format.
var ErrUnsupportedMedia = errors.New("unsupported media")

// Kind is the broad class of a decoded medium.
type Kind int

const (
	KindImage Kind = iota
	KindAnimation
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindAnimation:
		return "animation"
	case KindDocument:
		return "document"
	default:
		return "image"
	}
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Media describes one decoded medium.
type Media struct {
	Kind   Kind      `yaml:"kind"`
	Format string    `yaml:"format"`
	Size   geom.Vec2 `yaml:"size"`
	// Frames is the number of animation frames or document pages.
	Frames int `yaml:"frames"`
}

// Source is an opened medium made of one or more pages or frames.
type Source interface {
	PageCount() int
	PageSize(index int) (geom.Vec2, error)
	Close() error
}

var pdfMagic = []byte("%PDF")

// Open picks a decoder for data by sniffing its header.
func Open(data []byte) (Source, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty data", ErrUnsupportedMedia)
	}
	if bytes.HasPrefix(data, pdfMagic) {
		src, err := NewFitzPDFSource(data)
		if err != nil {
			return nil, "", err
		}
		return src, "pdf", nil
	}
	src, err := NewImageSource(data)
	if err != nil {
		return nil, "", err
	}
	return src, src.format, nil
}

// Probe opens data and reports what it holds.
func Probe(data []byte) (Media, error) {
	src, format, err := Open(data)
	if err != nil {
		return Media{}, err
	}
	defer src.Close()

	size, err := src.PageSize(0)
	if err != nil {
		return Media{}, err
	}
	m := Media{Kind: KindImage, Format: format, Size: size, Frames: src.PageCount()}
	switch {
	case format == "pdf":
		m.Kind = KindDocument
	case m.Frames > 1:
		m.Kind = KindAnimation
	}
	return m, nil
}

// FitzPDFSource reads page bounds from a PDF held in memory.
type FitzPDFSource struct {
	doc *fitz.Document
}

func NewFitzPDFSource(data []byte) (*FitzPDFSource, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrUnsupportedMedia, err)
	}
	return &FitzPDFSource{doc: doc}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) PageSize(index int) (geom.Vec2, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("pdf page %d: %w", index, err)
	}
	return geom.V2(float64(rect.Dx()), float64(rect.Dy())), nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
