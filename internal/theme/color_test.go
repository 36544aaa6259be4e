package theme

import (
	"math"
	"testing"
)

// closeTo tolerates the one-step rounding Lab round trips can
// introduce per channel.
func closeTo(a, b Color) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(a.R, b.R) <= 1 && diff(a.G, b.G) <= 1 && diff(a.B, b.B) <= 1
}

func TestHexRoundTrip(t *testing.T) {
	c, err := Hex("#1A1B26")
	if err != nil {
		t.Fatalf("Hex() error = %v", err)
	}
	if want := (Color{R: 0x1a, G: 0x1b, B: 0x26}); c != want {
		t.Errorf("Hex() = %+v, want %+v", c, want)
	}
	if got, want := c.Hex(), "#1a1b26"; got != want {
		t.Errorf("Hex() = %q, want %q", got, want)
	}
}

func TestHexInvalid(t *testing.T) {
	for _, s := range []string{"", "1a1b26", "#12", "#zzzzzz"} {
		if _, err := Hex(s); err == nil {
			t.Errorf("Hex(%q) error = nil, want parse error", s)
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := MustHex("#f7768e")
	b := MustHex("#1a1b26")

	if got := Blend(a, b, 0); !closeTo(got, a) {
		t.Errorf("Blend(t=0) = %s, want %s", got, a)
	}
	if got := Blend(a, b, 1); !closeTo(got, b) {
		t.Errorf("Blend(t=1) = %s, want %s", got, b)
	}
	// Out-of-range factors clamp instead of extrapolating.
	if got := Blend(a, b, 2); !closeTo(got, b) {
		t.Errorf("Blend(t=2) = %s, want %s", got, b)
	}
}

func TestBlendMidpointBetweenLuminances(t *testing.T) {
	a := MustHex("#ffffff")
	b := MustHex("#000000")
	mid := Blend(a, b, 0.5)

	if l := luminance(mid); l <= luminance(b) || l >= luminance(a) {
		t.Errorf("Blend midpoint luminance = %v, want between endpoints", l)
	}
}

func TestDarkenAndLighten(t *testing.T) {
	c := MustHex("#7aa2f7")

	if got := Darken(c, 0.3); luminance(got) >= luminance(c) {
		t.Errorf("Darken() luminance = %v, want below %v", luminance(got), luminance(c))
	}
	if got := Lighten(c, 0.3); luminance(got) <= luminance(c) {
		t.Errorf("Lighten() luminance = %v, want above %v", luminance(got), luminance(c))
	}
	if got := Darken(c, 0); got != c {
		t.Errorf("Darken(0) = %s, want unchanged %s", got, c)
	}
}

func TestContrastRatio(t *testing.T) {
	white := MustHex("#ffffff")
	black := MustHex("#000000")

	if got := Contrast(white, black); math.Abs(got-21) > 0.01 {
		t.Errorf("Contrast(white, black) = %v, want 21", got)
	}
	if got, want := Contrast(white, black), Contrast(black, white); got != want {
		t.Errorf("Contrast not symmetric: %v vs %v", got, want)
	}
	if got := Contrast(white, white); math.Abs(got-1) > 0.001 {
		t.Errorf("Contrast(white, white) = %v, want 1", got)
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		name string
		bg   string
		want Color
	}{
		{"black background", "#000000", Color{R: 255, G: 255, B: 255}},
		{"white background", "#ffffff", Color{}},
		{"tokyonight background", "#1a1b26", Color{R: 255, G: 255, B: 255}},
		{"solarized light background", "#fdf6e3", Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastText(MustHex(tt.bg)); got != tt.want {
				t.Errorf("ContrastText(%s) = %s, want %s", tt.bg, got, tt.want)
			}
		})
	}
}
