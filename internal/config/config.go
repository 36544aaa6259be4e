package config

import (
	"dotkit/internal/config/loader"
)

// DefaultFileName is the configuration file dotkit looks for at the
// source root.
const DefaultFileName = "dotkit.toml"

// Config is the merged tool configuration. It is immutable after Load;
// reads need no synchronization.
type Config struct {
	merged map[string]any

	fs        loader.FileSystem
	path      string
	envPrefix string
}

// Option configures a Config before Load.
type Option func(*Config)

// WithPath sets the configuration file path.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system used to read the configuration file.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix, including the
// trailing underscore.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates an unloaded Config. Call Load before reading settings.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		path:      DefaultFileName,
		envPrefix: loader.DefaultPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load merges defaults, the configuration file, and environment
// overrides, in that order. A missing file is skipped.
func (c *Config) Load() error {
	merged := defaultConfig()

	fileCfg, err := loader.NewTOMLLoaderWithFS(c.fs, c.path).Load()
	if err != nil {
		return err
	}
	merged = loader.DeepMerge(merged, fileCfg)

	envCfg, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return err
	}
	merged = loader.DeepMerge(merged, envCfg)

	c.merged = merged
	return nil
}

// Path returns the configuration file path the Config reads.
func (c *Config) Path() string {
	return c.path
}

// Merged returns a deep copy of the merged configuration map.
func (c *Config) Merged() map[string]any {
	return loader.Clone(c.merged)
}

// Get returns the raw value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	return getPath(c.merged, path)
}

// GetString returns the string value at path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns the integer value at path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns the boolean value at path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringSlice returns the string list at path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		result := make([]string, len(val))
		copy(result, val)
		return result, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// GetStringMap returns the string-to-string table at path.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "map", Actual: typeName(v)}
	}

	result := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)}
		}
		result[k] = s
	}
	return result, nil
}

// defaultConfig returns the built-in defaults: sync the current
// directory into the home directory, bashrc and zshrc by reference.
func defaultConfig() map[string]any {
	return map[string]any{
		"paths": map[string]any{
			"source": ".",
			"target": "~",
			"state":  ".sync_state.json",
		},
		"sync": map[string]any{
			"policy":  "overwrite",
			"exclude": []any{},
			"policies": map[string]any{
				".bashrc": "prepend-source",
				".zshrc":  "prepend-source",
			},
		},
		"manifest": map[string]any{
			"paths":   []any{},
			"profile": "",
		},
		"logging": map[string]any{
			"level": "info",
		},
	}
}

// getPath retrieves a value from a nested map along a dot-separated
// path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	var parts []string
	current := ""
	for _, r := range path {
		if r == '.' {
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
			continue
		}
		current += string(r)
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// typeName names a value's type for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string, []any:
		return "list"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
