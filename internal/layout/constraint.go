// Package layout splits a rectangle into segments along one axis under a
// list of sizing constraints.
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is returned when a constraint, direction or flex literal cannot be parsed.
var ErrSyntax = errors.New("layout: invalid literal")

// Kind tags a Constraint.
type Kind uint8

const (
	KindLength Kind = iota
	KindPercentage
	KindRatio
	KindMin
	KindMax
	KindFill
)

// Constraint governs how one segment's extent along the split axis is
// derived from the available space.
type Constraint struct {
	Kind  Kind
	Value float64
	// Den is only meaningful for KindRatio.
	Den float64
}

// Length is an exact size in design units.
func Length(l float64) Constraint { return Constraint{Kind: KindLength, Value: l} }

// Percentage is p percent of the area.
func Percentage(p float64) Constraint { return Constraint{Kind: KindPercentage, Value: p} }

// Ratio is num/den of the area.
func Ratio(num, den float64) Constraint { return Constraint{Kind: KindRatio, Value: num, Den: den} }

// Min is a lower bound on the size.
func Min(m float64) Constraint { return Constraint{Kind: KindMin, Value: m} }

// Max is an upper bound on the size.
func Max(m float64) Constraint { return Constraint{Kind: KindMax, Value: m} }

// Fill grows into leftover space proportionally to weight.
func Fill(weight float64) Constraint { return Constraint{Kind: KindFill, Value: weight} }

// proportion returns the fraction of the area a Ratio or Percentage asks for.
func (c Constraint) proportion() float64 {
	switch c.Kind {
	case KindRatio:
		return c.Value / max(c.Den, 1)
	case KindPercentage:
		return c.Value / 100
	}
	return 0
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (c Constraint) String() string {
	switch c.Kind {
	case KindLength:
		return fmtNum(c.Value) + "~"
	case KindPercentage:
		return fmtNum(c.Value) + "%"
	case KindRatio:
		return fmtNum(c.Value) + ":" + fmtNum(c.Den)
	case KindMin:
		return fmtNum(c.Value) + "-"
	case KindMax:
		return fmtNum(c.Value) + "+"
	case KindFill:
		return fmtNum(c.Value) + "#"
	}
	return "?"
}

// ParseConstraint reads the literal forms produced by Constraint.String:
// "50%", "1:2", "100~", "100-", "100+" and "1#".
func ParseConstraint(s string) (Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Constraint{}, fmt.Errorf("%w: empty constraint", ErrSyntax)
	}

	if num, den, ok := strings.Cut(s, ":"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w: ratio %q", ErrSyntax, s)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w: ratio %q", ErrSyntax, s)
		}
		return Ratio(n, d), nil
	}

	body, suffix := s[:len(s)-1], s[len(s)-1]
	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: constraint %q", ErrSyntax, s)
	}
	switch suffix {
	case '%':
		return Percentage(v), nil
	case '~':
		return Length(v), nil
	case '-':
		return Min(v), nil
	case '+':
		return Max(v), nil
	case '#':
		return Fill(v), nil
	}
	return Constraint{}, fmt.Errorf("%w: unknown constraint suffix in %q", ErrSyntax, s)
}
