package layout

import (
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// Layout describes how to split a rectangle along one axis.
//
// Spacing is the signed distance between adjacent segments; a negative
// value makes neighbours overlap by its magnitude.
type Layout struct {
	Direction   Direction
	Constraints []Constraint
	Margin      float64
	MarginPer   float64
	Flex        Flex
	Spacing     float64
}

// Split is TrySplit without the spacers.
func (l Layout) Split(area geom.Rect) ([]geom.Rect, error) {
	segments, _, err := l.TrySplit(area)
	return segments, err
}

func (l Layout) allProportional() bool {
	for _, c := range l.Constraints {
		if c.Kind != KindRatio && c.Kind != KindPercentage {
			return false
		}
	}
	return true
}

// TrySplit divides area into one segment per constraint and returns the
// spacers around them, one more spacer than segments.
//
// Layouts made only of Ratio and Percentage constraints with Legacy flex and
// no spacing are divided directly; they return no spacers.
func (l Layout) TrySplit(area geom.Rect) (segments, spacers []geom.Rect, err error) {
	inner := area.Shrink2(geom.Splat(l.Margin))
	if len(l.Constraints) == 0 {
		return nil, []geom.Rect{inner.Shrink2(geom.Splat(l.MarginPer))}, nil
	}
	if l.allProportional() && l.Flex == Legacy && l.Spacing == 0 {
		return l.splitProportional(inner), nil, nil
	}
	return l.solve(inner)
}

func (l Layout) splitProportional(inner geom.Rect) []geom.Rect {
	segments := make([]geom.Rect, 0, len(l.Constraints))
	per := geom.Splat(l.MarginPer)
	last := geom.FromMinSize(inner.Min, geom.Vec2{})

	for _, c := range l.Constraints {
		ratio := c.proportion()
		switch l.Direction {
		case Horizontal:
			last.Max.Y = inner.Max.Y
			last.SetWidth(inner.Width() * ratio)
			segments = append(segments, last.Shrink2(per))
			last.Min.X = last.Max.X
		case Vertical:
			last.Max.X = inner.Max.X
			last.SetHeight(inner.Height() * ratio)
			segments = append(segments, last.Shrink2(per))
			last.Min.Y = last.Max.Y
		}
	}

	if n := len(segments); n > 0 {
		segments[n-1].Max = inner.Max
	}
	return segments
}

// element is a [start, end] pair of solver variables.
type element struct {
	start, end int
}

func (e element) size() expr { return variable(e.end).minus(variable(e.start)) }

func (l Layout) solve(inner geom.Rect) ([]geom.Rect, []geom.Rect, error) {
	var areaStart, areaEnd float64
	switch l.Direction {
	case Horizontal:
		areaStart, areaEnd = inner.Min.X, inner.Max.X
	case Vertical:
		areaStart, areaEnd = inner.Min.Y, inner.Max.Y
	}
	// A margin larger than the area collapses it instead of failing.
	areaEnd = max(areaEnd, areaStart)

	// Variables alternate spacer/segment boundaries:
	// v0 [spacer] v1 [segment] v2 [spacer] v3 [segment] ... v2n+1
	s := &system{}
	vars := make([]int, 2*len(l.Constraints)+2)
	for i := range vars {
		vars[i] = s.newVar()
	}
	spacers := make([]element, 0, len(vars)/2)
	for i := 0; i+1 < len(vars); i += 2 {
		spacers = append(spacers, element{vars[i], vars[i+1]})
	}
	segments := make([]element, 0, len(l.Constraints))
	for i := 1; i+1 < len(vars)-1; i += 2 {
		segments = append(segments, element{vars[i], vars[i+1]})
	}
	area := element{vars[0], vars[len(vars)-1]}
	areaSize := areaEnd - areaStart

	// Area and ordering.
	s.add(variable(area.start), relEQ, constant(areaStart), strengthRequired)
	s.add(variable(area.end), relEQ, constant(areaEnd), strengthRequired)
	for _, v := range vars {
		s.add(variable(v), relGE, variable(area.start), strengthRequired)
		s.add(variable(v), relLE, variable(area.end), strengthRequired)
	}
	for _, seg := range segments {
		s.add(variable(seg.start), relLE, variable(seg.end), strengthRequired)
	}

	l.addFlexRules(s, area, spacers)
	l.addSizeRules(s, area, areaSize, segments)
	l.addFillRules(s, segments)

	if l.Flex != Legacy {
		for i := 0; i+1 < len(segments); i++ {
			s.add(segments[i].size(), relEQ, segments[i+1].size(), allSegmentGrow)
		}
	}

	values, err := s.solve()
	if err != nil {
		return nil, nil, err
	}
	return l.toRects(values, segments, inner), l.toRects(values, spacers, inner), nil
}

// empty pins an outer spacer to zero. It sits just below required but never
// competes with a required rule, so it is added as one.
func empty(s *system, e element) {
	s.add(e.size(), relEQ, constant(0), strengthRequired)
}

func (l Layout) addFlexRules(s *system, area element, spacers []element) {
	if len(spacers) == 0 {
		return
	}
	first, last := spacers[0], spacers[len(spacers)-1]
	var inner []element
	if len(spacers) > 2 {
		inner = spacers[1 : len(spacers)-1]
	}

	fixedInner := func() {
		for _, sp := range inner {
			s.add(sp.size(), relEQ, constant(l.Spacing), spacerSizeEq)
		}
	}
	spread := func(set []element) {
		for i := range set {
			for j := i + 1; j < len(set); j++ {
				s.add(set[i].size(), relEQ, set[j].size(), spacerSizeEq)
			}
		}
		for _, sp := range set {
			s.add(sp.size(), relGE, constant(l.Spacing), spacerSizeEq)
			s.add(sp.size(), relEQ, area.size(), spaceGrow)
		}
	}

	switch l.Flex {
	case Legacy:
		fixedInner()
		empty(s, first)
		empty(s, last)
	case SpaceAround:
		spread(spacers)
	case SpaceBetween:
		spread(inner)
		empty(s, first)
		empty(s, last)
	case Start:
		fixedInner()
		empty(s, first)
		s.add(last.size(), relEQ, area.size(), grow)
	case Center:
		fixedInner()
		s.add(first.size(), relEQ, area.size(), grow)
		s.add(last.size(), relEQ, area.size(), grow)
		s.add(first.size(), relEQ, last.size(), spacerSizeEq)
	case End:
		fixedInner()
		empty(s, last)
		s.add(first.size(), relEQ, area.size(), grow)
	}
}

// legacyBias scales Legacy size strengths down slightly from first to last
// segment so that equal-strength conflicts leave the excess in the last one.
const legacyBias = 1e-4

func (l Layout) addSizeRules(s *system, area element, areaSize float64, segments []element) {
	n := len(l.Constraints)
	for i, c := range l.Constraints {
		seg := segments[i]
		bias := 1.0
		if l.Flex == Legacy {
			bias += legacyBias * float64(n-1-i) / float64(n)
		}
		switch c.Kind {
		case KindMax:
			s.add(seg.size(), relLE, constant(c.Value), maxSizeLE*bias)
			s.add(seg.size(), relEQ, constant(c.Value), maxSizeEq*bias)
		case KindMin:
			s.add(seg.size(), relGE, constant(c.Value), minSizeGE*bias)
			if l.Flex == Legacy {
				s.add(seg.size(), relEQ, constant(c.Value), minSizeEq*bias)
			} else {
				s.add(seg.size(), relEQ, area.size(), fillGrow)
			}
		case KindLength:
			s.add(seg.size(), relEQ, constant(c.Value), lengthSizeEq*bias)
		case KindPercentage:
			s.add(seg.size(), relEQ, constant(areaSize*c.Value/100), percentageSizeEq*bias)
		case KindRatio:
			s.add(seg.size(), relEQ, constant(areaSize*c.proportion()), ratioSizeEq*bias)
		case KindFill:
			s.add(seg.size(), relEQ, area.size(), fillGrow)
		}
	}
}

// addFillRules ties every Fill segment (and Min segments outside Legacy) to
// every other one: size_i * weight_j == size_j * weight_i.
func (l Layout) addFillRules(s *system, segments []element) {
	type grower struct {
		seg   element
		scale float64
	}
	var growers []grower
	for i, c := range l.Constraints {
		switch {
		case c.Kind == KindFill:
			growers = append(growers, grower{segments[i], max(c.Value, 1e-6)})
		case c.Kind == KindMin && l.Flex != Legacy:
			growers = append(growers, grower{segments[i], 1})
		}
	}
	for i := range growers {
		for j := i + 1; j < len(growers); j++ {
			left, right := growers[i], growers[j]
			// Normalized so a pair of near-zero weights stays well conditioned.
			m := max(left.scale, right.scale)
			s.add(left.seg.size().scale(right.scale/m), relEQ, right.seg.size().scale(left.scale/m), grow)
		}
	}
}

func (l Layout) toRects(values []float64, elements []element, inner geom.Rect) []geom.Rect {
	per := geom.Splat(l.MarginPer)
	rects := make([]geom.Rect, 0, len(elements))
	for _, e := range elements {
		start := values[e.start]
		size := max(values[e.end]-start, 0)
		var r geom.Rect
		switch l.Direction {
		case Horizontal:
			r = geom.FromMinSize(geom.V2(start, inner.Min.Y), geom.V2(size, inner.Height()))
		case Vertical:
			r = geom.FromMinSize(geom.V2(inner.Min.X, start), geom.V2(inner.Width(), size))
		}
		rects = append(rects, r.Shrink2(per))
	}
	return rects
}
