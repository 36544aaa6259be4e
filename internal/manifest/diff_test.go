package manifest

import (
	"testing"
)

// The two drifted manifests this tool replaces: same three plugins, opposite
// lazy/priority flags, different declaration order.
func driftedPair() (*Manifest, *Manifest) {
	a := &Manifest{Plugins: []Descriptor{
		{Identifier: "folke/tokyonight.nvim", Priority: 1000, Activate: true},
		{Identifier: "maxmx03/solarized.nvim", Lazy: true, Priority: DefaultPriority},
		{Identifier: "nvim-lualine/lualine.nvim", Lazy: true, Priority: DefaultPriority},
	}}
	b := &Manifest{Plugins: []Descriptor{
		{Identifier: "maxmx03/solarized.nvim", Priority: 1000, Activate: true,
			Options: map[string]any{"style": "light"}},
		{Identifier: "folke/tokyonight.nvim", Lazy: true, Priority: DefaultPriority},
		{Identifier: "nvim-lualine/lualine.nvim", Lazy: true, Priority: DefaultPriority},
	}}
	return a, b
}

func findDivergence(divs []Divergence, id, field string) (Divergence, bool) {
	for _, d := range divs {
		if d.Identifier == id && d.Field == field {
			return d, true
		}
	}
	return Divergence{}, false
}

func TestDiffDriftedCopies(t *testing.T) {
	a, b := driftedPair()
	divs := Diff(a, b)

	if len(divs) == 0 {
		t.Fatal("Diff() found no divergence between drifted manifests")
	}

	d, ok := findDivergence(divs, "folke/tokyonight.nvim", "lazy")
	if !ok {
		t.Fatal("Diff() missed the lazy flag divergence")
	}
	if d.A != "false" || d.B != "true" {
		t.Errorf("lazy divergence = %s/%s, want false/true", d.A, d.B)
	}

	if _, ok := findDivergence(divs, "folke/tokyonight.nvim", "priority"); !ok {
		t.Error("Diff() missed the priority divergence")
	}
	if _, ok := findDivergence(divs, "maxmx03/solarized.nvim", "options"); !ok {
		t.Error("Diff() missed the options divergence")
	}
	if _, ok := findDivergence(divs, "folke/tokyonight.nvim", "position"); !ok {
		t.Error("Diff() missed the declaration order divergence")
	}

	// The stable plugin diverges in nothing.
	for _, d := range divs {
		if d.Identifier == "nvim-lualine/lualine.nvim" && d.Field != "position" {
			t.Errorf("unexpected divergence for stable plugin: %v", d)
		}
	}
}

func TestDiffIdentical(t *testing.T) {
	a, _ := driftedPair()
	if divs := Diff(a, a.Clone()); len(divs) != 0 {
		t.Errorf("Diff(m, m.Clone()) = %v, want none", divs)
	}
}

func TestDiffPresence(t *testing.T) {
	a := &Manifest{Plugins: []Descriptor{
		{Identifier: "a/only-in-a"},
		{Identifier: "c/common"},
	}}
	b := &Manifest{Plugins: []Descriptor{
		{Identifier: "c/common"},
		{Identifier: "b/only-in-b"},
	}}

	divs := Diff(a, b)

	d, ok := findDivergence(divs, "a/only-in-a", "presence")
	if !ok || d.A != "present" || d.B != "absent" {
		t.Errorf("presence divergence for a-only plugin = %+v", d)
	}
	d, ok = findDivergence(divs, "b/only-in-b", "presence")
	if !ok || d.A != "absent" || d.B != "present" {
		t.Errorf("presence divergence for b-only plugin = %+v", d)
	}
}

func TestDivergenceString(t *testing.T) {
	d := Divergence{Identifier: "a/b", Field: "lazy", A: "true", B: "false"}
	if got := d.String(); got != "a/b: lazy true / false" {
		t.Errorf("String() = %q", got)
	}
}
