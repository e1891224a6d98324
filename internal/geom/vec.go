// Package geom holds the value types shared by the layout, resolver and
// timeline packages: points, sizes, rectangles and alignment anchors.
package geom

// Vec2 is a point or a size in 2D space.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat returns a vector with both components set to v.
func Splat(v float64) Vec2 {
	return Vec2{X: v, Y: v}
}

// Add returns the vector sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the vector difference of v and other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns v scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec multiplies component-wise.
func (v Vec2) MulVec(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

// DivVec divides component-wise. A zero divisor component yields zero.
func (v Vec2) DivVec(other Vec2) Vec2 {
	var out Vec2
	if other.X != 0 {
		out.X = v.X / other.X
	}
	if other.Y != 0 {
		out.Y = v.Y / other.Y
	}
	return out
}

// Lerp interpolates between v and other by t.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(v.X, other.X, t), Y: Lerp(v.Y, other.Y, t)}
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FitAspect scales natural so that it fits inside avail while keeping its
// aspect ratio. Degenerate natural sizes fit as avail.
func FitAspect(natural, avail Vec2) Vec2 {
	if natural.X <= 0 || natural.Y <= 0 {
		return avail
	}
	scale := avail.X / natural.X
	if s := avail.Y / natural.Y; s < scale {
		scale = s
	}
	return natural.Mul(scale)
}
