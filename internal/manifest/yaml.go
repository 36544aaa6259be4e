package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlManifest is the structured document form: plugins plus optional
// profiles. A document that is a bare sequence decodes as the plugin list
// alone.
type yamlManifest struct {
	Plugins  []yamlDescriptor          `yaml:"plugins"`
	Profiles map[string][]yamlOverride `yaml:"profiles"`
}

// yamlDescriptor mirrors Descriptor with pointer fields so absent keys
// keep the loader defaults.
type yamlDescriptor struct {
	Identifier string         `yaml:"identifier"`
	Lazy       *bool          `yaml:"lazy"`
	Priority   *int           `yaml:"priority"`
	Options    map[string]any `yaml:"opts"`
	Activate   *bool          `yaml:"activate"`
}

type yamlOverride struct {
	Identifier string         `yaml:"identifier"`
	Lazy       *bool          `yaml:"lazy"`
	Priority   *int           `yaml:"priority"`
	Options    map[string]any `yaml:"opts"`
	Activate   *bool          `yaml:"activate"`
}

// LoadYAML reads a YAML manifest file.
func LoadYAML(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	m, err := ParseYAML(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
			return nil, pe
		}
		return nil, err
	}
	m.path = path
	return m, nil
}

// ParseYAML decodes YAML manifest source: either the structured
// plugins/profiles document or a bare descriptor list.
func ParseYAML(data []byte) (*Manifest, error) {
	m := &Manifest{format: FormatYAML}

	var doc yamlManifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Retry as a bare descriptor list.
		var list []yamlDescriptor
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return nil, &ParseError{Format: FormatYAML, Err: err}
		}
		doc.Plugins = list
	}

	for _, yd := range doc.Plugins {
		m.Plugins = append(m.Plugins, yd.descriptor())
	}

	if len(doc.Profiles) > 0 {
		m.Profiles = make(map[string]Profile, len(doc.Profiles))
		for name, entries := range doc.Profiles {
			p := make(Profile, 0, len(entries))
			for _, yo := range entries {
				p = append(p, Override{
					Identifier: yo.Identifier,
					Lazy:       yo.Lazy,
					Priority:   yo.Priority,
					Options:    yo.Options,
					Activate:   yo.Activate,
				})
			}
			m.Profiles[name] = p
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// descriptor applies the loader defaults for absent keys: plugins load
// lazily at the default priority unless the manifest says otherwise.
func (yd yamlDescriptor) descriptor() Descriptor {
	d := Descriptor{
		Identifier: yd.Identifier,
		Lazy:       true,
		Priority:   DefaultPriority,
		Options:    yd.Options,
	}
	if yd.Lazy != nil {
		d.Lazy = *yd.Lazy
	}
	if yd.Priority != nil {
		d.Priority = *yd.Priority
	}
	if yd.Activate != nil {
		d.Activate = *yd.Activate
	}
	return d
}
