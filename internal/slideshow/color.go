package slideshow

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an sRGB colour with straight alpha.
type Color struct {
	colorful.Color
	A float64
}

var (
	White = Color{Color: colorful.Color{R: 1, G: 1, B: 1}, A: 1}
	// DefaultBackground is the dark grey every slide starts from.
	DefaultBackground = Color{Color: colorful.OkLab(0.222, 0, 0).Clamped(), A: 1}
	// DefaultHighlight is a translucent yellow.
	DefaultHighlight = Color{Color: colorful.Color{R: 1, G: 1, B: 0}, A: 0.25}
)

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: colour %q", ErrSyntax, s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q", ErrSyntax, s)
	}
	return Color{Color: c, A: alpha}, nil
}

// Hex formats the colour as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("%s%02x", c.Color.Clamped().Hex(), uint8(math.Round(clamp01(c.A)*255)))
}

// MultiplyAlpha fades the colour by f.
func (c Color) MultiplyAlpha(f float64) Color {
	c.A = clamp01(c.A * f)
	return c
}

// Blend interpolates towards to in Oklab space.
func (c Color) Blend(to Color, t float64) Color {
	t = clamp01(t)
	return Color{
		Color: c.Color.BlendOkLab(to.Color, t).Clamped(),
		A:     c.A + (to.A-c.A)*t,
	}
}

// MarshalYAML writes the colour as a hex literal.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML reads a hex literal.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
