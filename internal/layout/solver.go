package layout

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrUnsatisfiable means the constraint system derived from a layout has no
// solution. Valid layouts never produce it; seeing it indicates a defect.
var ErrUnsatisfiable = errors.New("layout: constraints could not be satisfied")

// Constraint strengths, ordered by priority.
const (
	strengthRequired = 1_001_001_000.0
	strengthStrong   = 1_000_000.0
	strengthMedium   = 1_000.0
	strengthWeak     = 1.0

	spacerSizeEq     = strengthRequired / 10
	minSizeGE        = strengthStrong * 100
	maxSizeLE        = strengthStrong * 100
	lengthSizeEq     = strengthStrong * 10
	percentageSizeEq = strengthStrong
	ratioSizeEq      = strengthStrong / 10
	minSizeEq        = strengthMedium * 10
	maxSizeEq        = strengthMedium * 10
	fillGrow         = strengthMedium
	grow             = strengthMedium / 10
	spaceGrow        = strengthWeak * 10
	allSegmentGrow   = strengthWeak
)

// simplexTol applies to the normalised objective, where the weakest
// strength is about 1e-8.
const simplexTol = 1e-12

type relation uint8

const (
	relEQ relation = iota
	relLE
	relGE
)

type term struct {
	v    int
	coef float64
}

// expr is sum(coef*x[v]) + k.
type expr struct {
	terms []term
	k     float64
}

func variable(v int) expr { return expr{terms: []term{{v: v, coef: 1}}} }

func constant(k float64) expr { return expr{k: k} }

func (e expr) plus(o expr) expr {
	terms := make([]term, 0, len(e.terms)+len(o.terms))
	terms = append(append(terms, e.terms...), o.terms...)
	return expr{terms: terms, k: e.k + o.k}
}

func (e expr) scale(s float64) expr {
	terms := make([]term, len(e.terms))
	for i, t := range e.terms {
		terms[i] = term{v: t.v, coef: t.coef * s}
	}
	return expr{terms: terms, k: e.k * s}
}

func (e expr) minus(o expr) expr { return e.plus(o.scale(-1)) }

// rule is "e rel 0" held at a strength.
type rule struct {
	e        expr
	rel      relation
	strength float64
}

func (r rule) required() bool { return r.strength >= strengthRequired }

// system is a one-shot weighted constraint problem. Soft rules are turned
// into L1 penalties: each gets non-negative error variables whose weighted
// sum is minimised with the simplex method.
type system struct {
	nvars int
	rules []rule
}

func (s *system) newVar() int {
	s.nvars++
	return s.nvars - 1
}

func (s *system) add(lhs expr, rel relation, rhs expr, strength float64) {
	s.rules = append(s.rules, rule{e: lhs.minus(rhs), rel: rel, strength: strength})
}

func (s *system) solve() ([]float64, error) {
	nErr := 0
	maxWeight := 0.0
	for _, r := range s.rules {
		if r.required() {
			continue
		}
		if r.rel == relEQ {
			nErr += 2
		} else {
			nErr++
		}
		maxWeight = max(maxWeight, r.strength)
	}
	if maxWeight == 0 {
		maxWeight = 1
	}

	n := s.nvars + nErr
	cost := make([]float64, n)
	var g, a []float64
	var h, b []float64

	row := func(e expr) []float64 {
		out := make([]float64, n)
		for _, t := range e.terms {
			out[t.v] += t.coef
		}
		return out
	}
	le := func(r []float64, rhs float64) {
		g = append(g, r...)
		h = append(h, rhs)
	}
	eq := func(r []float64, rhs float64) {
		a = append(a, r...)
		b = append(b, rhs)
	}
	nonNeg := func(v int) {
		r := make([]float64, n)
		r[v] = -1
		le(r, 0)
	}
	negate := func(r []float64) []float64 {
		for i := range r {
			r[i] = -r[i]
		}
		return r
	}

	next := s.nvars
	for _, rl := range s.rules {
		coef := row(rl.e)
		rhs := -rl.e.k
		if rl.required() {
			switch rl.rel {
			case relEQ:
				eq(coef, rhs)
			case relLE:
				le(coef, rhs)
			case relGE:
				le(negate(coef), -rhs)
			}
			continue
		}

		w := rl.strength / maxWeight
		switch rl.rel {
		case relEQ:
			// e - over + under == 0
			coef[next], coef[next+1] = -1, 1
			cost[next], cost[next+1] = w, w
			eq(coef, rhs)
			nonNeg(next)
			nonNeg(next + 1)
			next += 2
		case relLE:
			// e - slack <= 0
			coef[next] = -1
			cost[next] = w
			le(coef, rhs)
			nonNeg(next)
			next++
		case relGE:
			// -e - slack <= 0
			coef = negate(coef)
			coef[next] = -1
			cost[next] = w
			le(coef, -rhs)
			nonNeg(next)
			next++
		}
	}

	var gm, am mat.Matrix
	if len(h) > 0 {
		gm = mat.NewDense(len(h), n, g)
	}
	if len(b) > 0 {
		am = mat.NewDense(len(b), n, a)
	}

	c, aStd, bStd := lp.Convert(cost, gm, h, am, b)
	_, x, err := lp.Simplex(c, aStd, bStd, simplexTol, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsatisfiable, err)
	}

	// Convert splits every free variable into x = xp - xn, laid out as [xp, xn, slack].
	out := make([]float64, s.nvars)
	for i := range out {
		out[i] = x[i] - x[n+i]
	}
	return out, nil
}
