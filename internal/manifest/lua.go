package manifest

import (
	"context"
	"fmt"

	glua "github.com/yuin/gopher-lua"

	mlua "dotkit/internal/manifest/lua"
)

// LoadLua evaluates a Lua manifest file in a sandboxed interpreter and
// decodes the table it returns.
func LoadLua(ctx context.Context, path string) (*Manifest, error) {
	s, err := mlua.NewState()
	if err != nil {
		return nil, fmt.Errorf("manifest: create lua state: %w", err)
	}
	defer s.Close()

	tbl, err := s.EvalFile(ctx, path)
	if err != nil {
		return nil, &ParseError{Path: path, Format: FormatLua, Err: err}
	}

	m, err := decodeLuaManifest(tbl)
	if err != nil {
		return nil, &ParseError{Path: path, Format: FormatLua, Err: err}
	}
	m.path = path
	m.format = FormatLua

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseLua evaluates Lua manifest source. Used where the manifest does not
// come from a file.
func ParseLua(ctx context.Context, source string) (*Manifest, error) {
	s, err := mlua.NewState()
	if err != nil {
		return nil, fmt.Errorf("manifest: create lua state: %w", err)
	}
	defer s.Close()

	tbl, err := s.EvalString(ctx, source)
	if err != nil {
		return nil, &ParseError{Format: FormatLua, Err: err}
	}

	m, err := decodeLuaManifest(tbl)
	if err != nil {
		return nil, &ParseError{Format: FormatLua, Err: err}
	}
	m.format = FormatLua

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeLuaManifest accepts either the structured form (plugins/profiles
// keys) or the loader-native bare array of descriptor tables.
func decodeLuaManifest(tbl *glua.LTable) (*Manifest, error) {
	m := &Manifest{}

	if plugins, ok := tbl.RawGetString("plugins").(*glua.LTable); ok {
		if err := decodeLuaPlugins(plugins, m); err != nil {
			return nil, err
		}
		if profiles, ok := tbl.RawGetString("profiles").(*glua.LTable); ok {
			if err := decodeLuaProfiles(profiles, m); err != nil {
				return nil, err
			}
		}
		return m, nil
	}

	if err := decodeLuaPlugins(tbl, m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeLuaPlugins(t *glua.LTable, m *Manifest) error {
	n := t.Len()
	for i := 1; i <= n; i++ {
		d, err := decodeLuaDescriptor(t.RawGetInt(i))
		if err != nil {
			return fmt.Errorf("plugin %d: %w", i, err)
		}
		m.Plugins = append(m.Plugins, d)
	}
	return nil
}

// decodeLuaDescriptor decodes one spec entry: a bare identifier string or
// a table with a positional identifier and named fields.
func decodeLuaDescriptor(lv glua.LValue) (Descriptor, error) {
	d := Descriptor{Lazy: true, Priority: DefaultPriority}

	switch v := lv.(type) {
	case glua.LString:
		d.Identifier = string(v)
		return d, nil

	case *glua.LTable:
		if id, ok := v.RawGetInt(1).(glua.LString); ok {
			d.Identifier = string(id)
		}
		if lazy, ok := v.RawGetString("lazy").(glua.LBool); ok {
			d.Lazy = bool(lazy)
		}
		if prio, ok := v.RawGetString("priority").(glua.LNumber); ok {
			d.Priority = int(prio)
		}
		if opts, ok := v.RawGetString("opts").(*glua.LTable); ok {
			if om, ok := mlua.ToGoValue(opts).(map[string]any); ok {
				d.Options = om
			}
		}
		if act, ok := v.RawGetString("activate").(glua.LBool); ok {
			d.Activate = bool(act)
		}

		// Legacy imperative setup. A config function cannot cross the
		// boundary; its presence means the plugin is applied after load.
		switch cfg := v.RawGetString("config").(type) {
		case *glua.LFunction:
			d.Activate = true
		case glua.LBool:
			if bool(cfg) {
				d.Activate = true
			}
		}
		return d, nil

	default:
		return d, fmt.Errorf("descriptor must be a string or table, got %s", lv.Type())
	}
}

func decodeLuaProfiles(t *glua.LTable, m *Manifest) error {
	m.Profiles = make(map[string]Profile)

	var decodeErr error
	t.ForEach(func(k, v glua.LValue) {
		if decodeErr != nil {
			return
		}
		name, ok := k.(glua.LString)
		if !ok {
			decodeErr = fmt.Errorf("profile name must be a string, got %s", k.Type())
			return
		}
		entries, ok := v.(*glua.LTable)
		if !ok {
			decodeErr = fmt.Errorf("profile %q must be a table, got %s", string(name), v.Type())
			return
		}

		var p Profile
		for i := 1; i <= entries.Len(); i++ {
			o, err := decodeLuaOverride(entries.RawGetInt(i))
			if err != nil {
				decodeErr = fmt.Errorf("profile %q entry %d: %w", string(name), i, err)
				return
			}
			p = append(p, o)
		}
		m.Profiles[string(name)] = p
	})

	return decodeErr
}

func decodeLuaOverride(lv glua.LValue) (Override, error) {
	var o Override

	t, ok := lv.(*glua.LTable)
	if !ok {
		return o, fmt.Errorf("override must be a table, got %s", lv.Type())
	}

	if id, ok := t.RawGetInt(1).(glua.LString); ok {
		o.Identifier = string(id)
	} else if id, ok := t.RawGetString("identifier").(glua.LString); ok {
		o.Identifier = string(id)
	}
	if lazy, ok := t.RawGetString("lazy").(glua.LBool); ok {
		b := bool(lazy)
		o.Lazy = &b
	}
	if prio, ok := t.RawGetString("priority").(glua.LNumber); ok {
		p := int(prio)
		o.Priority = &p
	}
	if opts, ok := t.RawGetString("opts").(*glua.LTable); ok {
		if om, ok := mlua.ToGoValue(opts).(map[string]any); ok {
			o.Options = om
		}
	}
	if act, ok := t.RawGetString("activate").(glua.LBool); ok {
		b := bool(act)
		o.Activate = &b
	}
	return o, nil
}
