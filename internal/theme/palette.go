package theme

import (
	"errors"
	"fmt"
	"sort"

	"dotkit/internal/manifest"
)

var (
	// ErrUnknownScheme reports a plugin identifier with no builtin
	// palettes.
	ErrUnknownScheme = errors.New("theme: no palette for plugin")

	// ErrUnknownStyle reports a style option the scheme does not carry.
	ErrUnknownStyle = errors.New("theme: unknown style")

	// ErrUnknownPalette reports a palette name missing from the
	// registry.
	ErrUnknownPalette = errors.New("theme: unknown palette")
)

// Accent is a named accent color within a palette.
type Accent struct {
	Name  string
	Color Color
}

// Palette is the color set a colorscheme plugin applies. Accents keep
// their display order.
type Palette struct {
	Name       string
	Style      string
	Dark       bool
	Background Color
	Foreground Color
	Accents    []Accent
}

// Clone returns a copy whose accent slice is independent of the
// registry's.
func (p *Palette) Clone() *Palette {
	c := *p
	c.Accents = append([]Accent(nil), p.Accents...)
	return &c
}

var (
	tokyonightNight = &Palette{
		Name:       "tokyonight-night",
		Style:      "night",
		Dark:       true,
		Background: MustHex("#1a1b26"),
		Foreground: MustHex("#c0caf5"),
		Accents: []Accent{
			{"red", MustHex("#f7768e")},
			{"orange", MustHex("#ff9e64")},
			{"yellow", MustHex("#e0af68")},
			{"green", MustHex("#9ece6a")},
			{"cyan", MustHex("#7dcfff")},
			{"blue", MustHex("#7aa2f7")},
			{"magenta", MustHex("#bb9af7")},
			{"comment", MustHex("#565f89")},
		},
	}

	tokyonightStorm = &Palette{
		Name:       "tokyonight-storm",
		Style:      "storm",
		Dark:       true,
		Background: MustHex("#24283b"),
		Foreground: MustHex("#c0caf5"),
		Accents: []Accent{
			{"red", MustHex("#f7768e")},
			{"orange", MustHex("#ff9e64")},
			{"yellow", MustHex("#e0af68")},
			{"green", MustHex("#9ece6a")},
			{"cyan", MustHex("#7dcfff")},
			{"blue", MustHex("#7aa2f7")},
			{"magenta", MustHex("#bb9af7")},
			{"comment", MustHex("#565f89")},
		},
	}

	tokyonightDay = &Palette{
		Name:       "tokyonight-day",
		Style:      "day",
		Dark:       false,
		Background: MustHex("#e1e2e7"),
		Foreground: MustHex("#3760bf"),
		Accents: []Accent{
			{"red", MustHex("#f52a65")},
			{"orange", MustHex("#b15c00")},
			{"yellow", MustHex("#8c6c3e")},
			{"green", MustHex("#587539")},
			{"cyan", MustHex("#007197")},
			{"blue", MustHex("#2e7de9")},
			{"magenta", MustHex("#9854f1")},
			{"comment", MustHex("#848cb5")},
		},
	}

	solarizedDark = &Palette{
		Name:       "solarized-dark",
		Style:      "dark",
		Dark:       true,
		Background: MustHex("#002b36"),
		Foreground: MustHex("#839496"),
		Accents: []Accent{
			{"red", MustHex("#dc322f")},
			{"orange", MustHex("#cb4b16")},
			{"yellow", MustHex("#b58900")},
			{"green", MustHex("#859900")},
			{"cyan", MustHex("#2aa198")},
			{"blue", MustHex("#268bd2")},
			{"magenta", MustHex("#d33682")},
			{"violet", MustHex("#6c71c4")},
		},
	}

	solarizedLight = &Palette{
		Name:       "solarized-light",
		Style:      "light",
		Dark:       false,
		Background: MustHex("#fdf6e3"),
		Foreground: MustHex("#657b83"),
		Accents: []Accent{
			{"red", MustHex("#dc322f")},
			{"orange", MustHex("#cb4b16")},
			{"yellow", MustHex("#b58900")},
			{"green", MustHex("#859900")},
			{"cyan", MustHex("#2aa198")},
			{"blue", MustHex("#268bd2")},
			{"magenta", MustHex("#d33682")},
			{"violet", MustHex("#6c71c4")},
		},
	}
)

var builtins = []*Palette{
	tokyonightNight,
	tokyonightStorm,
	tokyonightDay,
	solarizedDark,
	solarizedLight,
}

// scheme groups the style variants a single plugin ships.
type scheme struct {
	defaultStyle string
	styles       map[string]*Palette
}

var schemes = map[string]scheme{
	"folke/tokyonight.nvim": {
		defaultStyle: "night",
		styles: map[string]*Palette{
			"night": tokyonightNight,
			"storm": tokyonightStorm,
			"day":   tokyonightDay,
		},
	},
	"maxmx03/solarized.nvim": {
		defaultStyle: "dark",
		styles: map[string]*Palette{
			"dark":  solarizedDark,
			"light": solarizedLight,
		},
	},
}

// Default returns the palette used when no manifest names one.
func Default() *Palette {
	return tokyonightNight.Clone()
}

// Lookup returns the palette registered under name.
func Lookup(name string) (*Palette, bool) {
	for _, p := range builtins {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return nil, false
}

// Get is Lookup with an error for CLI surfaces.
func Get(name string) (*Palette, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPalette, name)
	}
	return p, nil
}

// Names lists the registered palette names sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, p := range builtins {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a plugin descriptor to its palette. The scheme comes
// from the descriptor identifier and the variant from the "style"
// option, falling back to the scheme's default style.
func Resolve(d manifest.Descriptor) (*Palette, error) {
	sch, ok := schemes[d.Identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, d.Identifier)
	}
	style := sch.defaultStyle
	if v, ok := d.Options["style"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("theme: style option for %s must be a string, got %T", d.Identifier, v)
		}
		style = s
	}
	p, ok := sch.styles[style]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no style %q", ErrUnknownStyle, d.Identifier, style)
	}
	return p.Clone(), nil
}
