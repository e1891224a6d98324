package geom

// AxisAlign places something along one axis of a rect.
type AxisAlign uint8

const (
	AlignMin AxisAlign = iota
	AlignCenter
	AlignMax
)

// Align2 is one of the nine anchor points of a rectangle.
type Align2 struct {
	X AxisAlign
	Y AxisAlign
}

var (
	LeftTop      = Align2{AlignMin, AlignMin}
	CenterTop    = Align2{AlignCenter, AlignMin}
	RightTop     = Align2{AlignMax, AlignMin}
	LeftCenter   = Align2{AlignMin, AlignCenter}
	CenterCenter = Align2{AlignCenter, AlignCenter}
	RightCenter  = Align2{AlignMax, AlignCenter}
	LeftBottom   = Align2{AlignMin, AlignMax}
	CenterBottom = Align2{AlignCenter, AlignMax}
	RightBottom  = Align2{AlignMax, AlignMax}
)

func (a AxisAlign) place(size, min, max float64) float64 {
	switch a {
	case AlignCenter:
		return (min+max)/2 - size/2
	case AlignMax:
		return max - size
	default:
		return min
	}
}

func (a AxisAlign) pos(min, max float64) float64 {
	switch a {
	case AlignCenter:
		return (min + max) / 2
	case AlignMax:
		return max
	default:
		return min
	}
}

// AlignSizeWithinRect positions a box of the given size inside rect so that
// the box's anchor coincides with the rect's anchor.
func (a Align2) AlignSizeWithinRect(size Vec2, rect Rect) Rect {
	min := V2(
		a.X.place(size.X, rect.Min.X, rect.Max.X),
		a.Y.place(size.Y, rect.Min.Y, rect.Max.Y),
	)
	return FromMinSize(min, size)
}

// PosInRect returns the anchor point of rect.
func (a Align2) PosInRect(rect Rect) Vec2 {
	return V2(a.X.pos(rect.Min.X, rect.Max.X), a.Y.pos(rect.Min.Y, rect.Max.Y))
}

func (a Align2) String() string {
	names := [3][3]string{
		{"LeftTop", "LeftCenter", "LeftBottom"},
		{"CenterTop", "CenterCenter", "CenterBottom"},
		{"RightTop", "RightCenter", "RightBottom"},
	}
	if a.X > AlignMax || a.Y > AlignMax {
		return "Invalid"
	}
	return names[a.X][a.Y]
}
