package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle described by its min and max corners.
type Rect struct {
	Min Vec2 `yaml:"min"`
	Max Vec2 `yaml:"max"`
}

// FromMinSize builds a rect from its top-left corner and a size.
func FromMinSize(min, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// XYWH builds a rect from x, y, width and height.
func XYWH(x, y, w, h float64) Rect {
	return FromMinSize(V2(x, y), V2(w, h))
}

// Width of the rect.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height of the rect.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns width and height as a vector.
func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }

// Center returns the midpoint of the rect.
func (r Rect) Center() Vec2 {
	return V2((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Translate moves the rect by offset.
func (r Rect) Translate(offset Vec2) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// Scale multiplies both corners by f. The result is scaled about the origin.
func (r Rect) Scale(f float64) Rect {
	return Rect{Min: r.Min.Mul(f), Max: r.Max.Mul(f)}
}

// Shrink2 insets the rect by m on each side.
func (r Rect) Shrink2(m Vec2) Rect {
	return Rect{Min: r.Min.Add(m), Max: r.Max.Sub(m)}
}

// SetWidth keeps Min and moves Max.X.
func (r *Rect) SetWidth(w float64) { r.Max.X = r.Min.X + w }

// SetHeight keeps Min and moves Max.Y.
func (r *Rect) SetHeight(h float64) { r.Max.Y = r.Min.Y + h }

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: V2(math.Min(r.Min.X, other.Min.X), math.Min(r.Min.Y, other.Min.Y)),
		Max: V2(math.Max(r.Max.X, other.Max.X), math.Max(r.Max.Y, other.Max.Y)),
	}
}

// Lerp interpolates both corners towards other.
func (r Rect) Lerp(other Rect, t float64) Rect {
	return Rect{Min: r.Min.Lerp(other.Min, t), Max: r.Max.Lerp(other.Max, t)}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Min.X, r.Min.Y, r.Width(), r.Height())
}
