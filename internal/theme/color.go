package theme

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color. The zero value is black.
type Color struct {
	R, G, B uint8
}

// Hex parses a "#rrggbb" web color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("theme: parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// MustHex is Hex for the builtin palette tables; a bad literal panics
// at package load.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the lowercase "#rrggbb" form.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) String() string { return c.Hex() }

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}

// Blend mixes a toward b in Lab space, which keeps the midpoints
// perceptually even. t is clamped to [0, 1].
func Blend(a, b Color, t float64) Color {
	return fromColorful(a.colorful().BlendLab(b.colorful(), clamp01(t)).Clamped())
}

// Darken lowers lightness by amount of its current value.
func Darken(c Color, amount float64) Color {
	l, a, b := c.colorful().Lab()
	l *= 1 - clamp01(amount)
	return fromColorful(colorful.Lab(l, a, b).Clamped())
}

// Lighten raises lightness by amount of the remaining headroom toward
// white.
func Lighten(c Color, amount float64) Color {
	l, a, b := c.colorful().Lab()
	l += (1 - l) * clamp01(amount)
	return fromColorful(colorful.Lab(l, a, b).Clamped())
}

// Contrast returns the WCAG contrast ratio between two colors: 1 for
// identical luminance up to 21 for black on white.
func Contrast(a, b Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastText picks black or white, whichever reads better on bg.
func ContrastText(bg Color) Color {
	white := Color{R: 255, G: 255, B: 255}
	if Contrast(white, bg) >= Contrast(Color{}, bg) {
		return white
	}
	return Color{}
}

// luminance is the Y component of CIE XYZ, the relative luminance the
// WCAG ratio is defined over.
func luminance(c Color) float64 {
	_, y, _ := c.colorful().Xyz()
	return y
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
