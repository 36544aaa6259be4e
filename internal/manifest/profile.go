package manifest

import "fmt"

// Profile is a named set of per-identifier overrides. Applying one derives
// a variant manifest from the shared plugin list.
type Profile []Override

// Override adjusts fields of one existing descriptor. Nil fields keep the
// descriptor's value; Options merge key-by-key with the override winning.
type Override struct {
	Identifier string         `json:"identifier"`
	Lazy       *bool          `json:"lazy,omitempty"`
	Priority   *int           `json:"priority,omitempty"`
	Options    map[string]any `json:"opts,omitempty"`
	Activate   *bool          `json:"activate,omitempty"`
}

// Apply returns a copy of the manifest with the named profile applied.
// The empty name returns an unmodified copy. Overrides never add
// descriptors: an override whose identifier is not in the plugin list is
// skipped here and reported by Lint.
func (m *Manifest) Apply(name string) (*Manifest, error) {
	derived := m.Clone()
	if name == "" {
		return derived, nil
	}

	profile, ok := m.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	for _, o := range profile {
		for i := range derived.Plugins {
			if derived.Plugins[i].Identifier == o.Identifier {
				o.apply(&derived.Plugins[i])
				break
			}
		}
	}
	return derived, nil
}

// apply merges the override into a descriptor.
func (o Override) apply(d *Descriptor) {
	if o.Lazy != nil {
		d.Lazy = *o.Lazy
	}
	if o.Priority != nil {
		d.Priority = *o.Priority
	}
	if o.Activate != nil {
		d.Activate = *o.Activate
	}
	if len(o.Options) > 0 {
		d.Options = mergeOptions(d.Options, o.Options)
	}
}

// Clone creates a deep copy of the profile.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	clone := make(Profile, len(p))
	for i, o := range p {
		clone[i] = o.clone()
	}
	return clone
}

func (o Override) clone() Override {
	clone := o
	if o.Lazy != nil {
		v := *o.Lazy
		clone.Lazy = &v
	}
	if o.Priority != nil {
		v := *o.Priority
		clone.Priority = &v
	}
	if o.Activate != nil {
		v := *o.Activate
		clone.Activate = &v
	}
	if o.Options != nil {
		clone.Options = cloneValue(o.Options).(map[string]any)
	}
	return clone
}

// mergeOptions merges override options into base. Nested maps merge
// recursively; any other collision is won by the override.
func mergeOptions(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = cloneValue(v)
	}
	for k, v := range override {
		if bm, ok := merged[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				merged[k] = mergeOptions(bm, om)
				continue
			}
		}
		merged[k] = cloneValue(v)
	}
	return merged
}
