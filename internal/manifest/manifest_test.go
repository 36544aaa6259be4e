package manifest

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		plugins []Descriptor
		wantErr error
	}{
		{
			name: "valid manifest",
			plugins: []Descriptor{
				{Identifier: "folke/tokyonight.nvim", Priority: 1000},
				{Identifier: "nvim-lualine/lualine.nvim", Lazy: true},
			},
		},
		{
			name:    "empty identifier",
			plugins: []Descriptor{{Identifier: ""}},
			wantErr: ErrMissingIdentifier,
		},
		{
			name:    "missing owner",
			plugins: []Descriptor{{Identifier: "tokyonight.nvim"}},
			wantErr: ErrInvalidIdentifier,
		},
		{
			name:    "trailing slash",
			plugins: []Descriptor{{Identifier: "folke/"}},
			wantErr: ErrInvalidIdentifier,
		},
		{
			name: "duplicate identifier",
			plugins: []Descriptor{
				{Identifier: "folke/tokyonight.nvim"},
				{Identifier: "folke/tokyonight.nvim", Lazy: true},
			},
			wantErr: ErrDuplicateIdentifier,
		},
		{
			name:    "empty manifest",
			plugins: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Plugins: tt.plugins}
			err := m.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEagerOrder(t *testing.T) {
	m := &Manifest{Plugins: []Descriptor{
		{Identifier: "a/low", Priority: 10},
		{Identifier: "b/lazy", Lazy: true, Priority: 9000},
		{Identifier: "c/high", Priority: 1000},
		{Identifier: "d/alsohigh", Priority: 1000},
		{Identifier: "e/default", Priority: DefaultPriority},
	}}

	got := m.EagerOrder()
	want := []string{"c/high", "d/alsohigh", "e/default", "a/low"}

	if len(got) != len(want) {
		t.Fatalf("EagerOrder() returned %d descriptors, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Identifier != id {
			t.Errorf("EagerOrder()[%d] = %q, want %q", i, got[i].Identifier, id)
		}
	}
}

func TestEagerOrderStable(t *testing.T) {
	// Equal priorities keep declaration order.
	m := &Manifest{Plugins: []Descriptor{
		{Identifier: "a/first", Priority: 100},
		{Identifier: "b/second", Priority: 100},
		{Identifier: "c/third", Priority: 100},
	}}

	got := m.EagerOrder()
	for i, id := range []string{"a/first", "b/second", "c/third"} {
		if got[i].Identifier != id {
			t.Errorf("EagerOrder()[%d] = %q, want %q", i, got[i].Identifier, id)
		}
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		name      string
		plugins   []Descriptor
		wantID    string
		wantFound bool
	}{
		{
			name: "single activator",
			plugins: []Descriptor{
				{Identifier: "folke/tokyonight.nvim", Activate: true},
				{Identifier: "nvim-lualine/lualine.nvim", Lazy: true},
			},
			wantID:    "folke/tokyonight.nvim",
			wantFound: true,
		},
		{
			name: "last declared wins",
			plugins: []Descriptor{
				{Identifier: "folke/tokyonight.nvim", Activate: true},
				{Identifier: "maxmx03/solarized.nvim", Activate: true},
			},
			wantID:    "maxmx03/solarized.nvim",
			wantFound: true,
		},
		{
			name: "lazy activator does not count",
			plugins: []Descriptor{
				{Identifier: "folke/tokyonight.nvim", Lazy: true, Activate: true},
			},
			wantFound: false,
		},
		{
			name:      "no activators",
			plugins:   []Descriptor{{Identifier: "a/b"}},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Plugins: tt.plugins}
			got, found := m.Active()
			if found != tt.wantFound {
				t.Fatalf("Active() found = %v, want %v", found, tt.wantFound)
			}
			if found && got.Identifier != tt.wantID {
				t.Errorf("Active() = %q, want %q", got.Identifier, tt.wantID)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	m := &Manifest{Plugins: []Descriptor{
		{Identifier: "folke/tokyonight.nvim", Options: map[string]any{"style": "night"}},
	}}

	d, ok := m.Lookup("folke/tokyonight.nvim")
	if !ok {
		t.Fatal("Lookup() returned not found for present identifier")
	}

	// The returned descriptor is a copy: mutating it must not touch the
	// manifest.
	d.Options["style"] = "day"
	orig, _ := m.Lookup("folke/tokyonight.nvim")
	if orig.Options["style"] != "night" {
		t.Error("Lookup() returned a shared Options map")
	}

	if _, ok := m.Lookup("missing/plugin"); ok {
		t.Error("Lookup() found a missing identifier")
	}
}

func TestClone(t *testing.T) {
	m := &Manifest{
		Plugins: []Descriptor{
			{Identifier: "folke/tokyonight.nvim", Options: map[string]any{
				"style": "night",
				"dim":   map[string]any{"inactive": true},
			}},
		},
		Profiles: map[string]Profile{
			"light": {{Identifier: "folke/tokyonight.nvim", Options: map[string]any{"style": "day"}}},
		},
	}

	clone := m.Clone()
	if !reflect.DeepEqual(clone.Plugins, m.Plugins) {
		t.Error("Clone() plugins differ from original")
	}

	clone.Plugins[0].Options["style"] = "storm"
	nested := clone.Plugins[0].Options["dim"].(map[string]any)
	nested["inactive"] = false

	if m.Plugins[0].Options["style"] != "night" {
		t.Error("Clone() shares the top-level Options map")
	}
	if m.Plugins[0].Options["dim"].(map[string]any)["inactive"] != true {
		t.Error("Clone() shares nested Options maps")
	}
}

func TestString(t *testing.T) {
	m := &Manifest{
		Plugins: []Descriptor{
			{Identifier: "a/b"},
			{Identifier: "c/d", Lazy: true},
		},
		Profiles: map[string]Profile{"light": nil},
	}
	want := "2 plugins (1 eager), 1 profiles"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
