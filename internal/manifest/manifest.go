package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// DefaultPriority is assigned to descriptors that do not declare a
// priority. Colorscheme plugins conventionally declare 1000 so they load
// before anything that reads highlight groups.
const DefaultPriority = 50

// Format identifies the on-disk encoding of a manifest file.
type Format string

// Supported manifest encodings.
const (
	FormatLua  Format = "lua"
	FormatYAML Format = "yaml"
)

// Descriptor declares one plugin for the external loading system.
type Descriptor struct {
	Identifier string         `json:"identifier"`         // plugin source, owner/repository form
	Lazy       bool           `json:"lazy"`               // defer loading until triggered
	Priority   int            `json:"priority"`           // ordering among eager loads, higher first
	Options    map[string]any `json:"opts,omitempty"`     // payload passed verbatim to the plugin setup
	Activate   bool           `json:"activate,omitempty"` // apply the plugin after setup
}

// Manifest is an ordered list of plugin descriptors plus optional named
// profiles.
type Manifest struct {
	Plugins  []Descriptor       `json:"plugins"`
	Profiles map[string]Profile `json:"profiles,omitempty"`

	// Internal: where and how the manifest was loaded.
	path   string
	format Format
}

// Validation errors.
var (
	ErrMissingIdentifier   = errors.New("manifest: identifier is required")
	ErrInvalidIdentifier   = errors.New("manifest: identifier must be in owner/repository form")
	ErrDuplicateIdentifier = errors.New("manifest: duplicate identifier")
	ErrUnknownProfile      = errors.New("manifest: unknown profile")
	ErrUnsupportedFormat   = errors.New("manifest: unsupported manifest format")
)

// identifierPattern validates plugin identifiers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*/[A-Za-z0-9._-]+$`)

// Validate checks every descriptor identifier and rejects duplicates.
// At most one descriptor per distinct identifier may appear in a manifest.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Plugins))
	for i, d := range m.Plugins {
		if d.Identifier == "" {
			return fmt.Errorf("%w (plugin %d)", ErrMissingIdentifier, i+1)
		}
		if !identifierPattern.MatchString(d.Identifier) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, d.Identifier)
		}
		if seen[d.Identifier] {
			return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, d.Identifier)
		}
		seen[d.Identifier] = true
	}
	return nil
}

// Lookup returns the descriptor with the given identifier.
func (m *Manifest) Lookup(identifier string) (Descriptor, bool) {
	for _, d := range m.Plugins {
		if d.Identifier == identifier {
			return d.Clone(), true
		}
	}
	return Descriptor{}, false
}

// EagerOrder returns the eagerly loaded descriptors in load order:
// priority descending, declaration order breaking ties.
func (m *Manifest) EagerOrder() []Descriptor {
	eager := make([]Descriptor, 0, len(m.Plugins))
	for _, d := range m.Plugins {
		if !d.Lazy {
			eager = append(eager, d.Clone())
		}
	}
	sort.SliceStable(eager, func(i, j int) bool {
		return eager[i].Priority > eager[j].Priority
	})
	return eager
}

// Active returns the descriptor whose activation takes effect. The model
// does not forbid several eager descriptors setting Activate; the last
// declared wins, and Lint reports the conflict.
func (m *Manifest) Active() (Descriptor, bool) {
	var (
		active Descriptor
		found  bool
	)
	for _, d := range m.Plugins {
		if !d.Lazy && d.Activate {
			active = d.Clone()
			found = true
		}
	}
	return active, found
}

// ProfileNames returns the profile names in sorted order.
func (m *Manifest) ProfileNames() []string {
	names := make([]string, 0, len(m.Profiles))
	for name := range m.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the file the manifest was loaded from, if any.
func (m *Manifest) Path() string {
	return m.path
}

// Format returns the encoding the manifest was loaded from.
func (m *Manifest) Format() Format {
	return m.format
}

// String summarizes the manifest.
func (m *Manifest) String() string {
	eager := 0
	for _, d := range m.Plugins {
		if !d.Lazy {
			eager++
		}
	}
	return fmt.Sprintf("%d plugins (%d eager), %d profiles", len(m.Plugins), eager, len(m.Profiles))
}

// Clone creates a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	clone := &Manifest{path: m.path, format: m.format}

	if m.Plugins != nil {
		clone.Plugins = make([]Descriptor, len(m.Plugins))
		for i, d := range m.Plugins {
			clone.Plugins[i] = d.Clone()
		}
	}

	if m.Profiles != nil {
		clone.Profiles = make(map[string]Profile, len(m.Profiles))
		for name, p := range m.Profiles {
			clone.Profiles[name] = p.Clone()
		}
	}

	return clone
}

// Clone creates a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	clone := d
	if d.Options != nil {
		clone.Options = cloneValue(d.Options).(map[string]any)
	}
	return clone
}

// cloneValue deep-copies the map/slice/scalar trees option payloads
// decode into.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = cloneValue(val)
		}
		return s
	default:
		return v
	}
}
