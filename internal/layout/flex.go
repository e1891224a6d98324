package layout

import (
	"fmt"
	"strings"
)

// Direction is the axis constraints are applied along.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseDirection accepts the arrow forms ("^", "_", ">", "<") as well as
// the spelled-out names.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "^", "_", "|", "vertical", "v":
		return Vertical, nil
	case ">", "<", "-", "horizontal", "h":
		return Horizontal, nil
	}
	return Horizontal, fmt.Errorf("%w: direction %q", ErrSyntax, s)
}

// Flex governs how leftover space is distributed among spacers.
type Flex uint8

const (
	// Legacy puts excess space into the segments and keeps the outer spacers empty.
	Legacy Flex = iota
	Start
	Center
	End
	SpaceBetween
	SpaceAround
)

var flexNames = [...]string{"legacy", "start", "center", "end", "space-between", "space-around"}

func (f Flex) String() string {
	if int(f) < len(flexNames) {
		return flexNames[f]
	}
	return "unknown"
}

// ParseFlex reads a flex mode by name.
func ParseFlex(s string) (Flex, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Legacy, nil
	}
	for i, name := range flexNames {
		if s == name {
			return Flex(i), nil
		}
	}
	return Legacy, fmt.Errorf("%w: flex %q", ErrSyntax, s)
}
