package config

import (
	"os"
	"path/filepath"
)

// Section accessors return snapshot structs with defaults applied.
// Mutating a snapshot does not modify the configuration.

// PathsConfig locates the three trees a sync run touches.
type PathsConfig struct {
	// Source is the dotfiles repo root files are synced from.
	Source string

	// Target is the directory files are synced into.
	Target string

	// State is the sync state file. Relative paths resolve under
	// Source.
	State string
}

// SyncConfig controls the sync engine.
type SyncConfig struct {
	// Policy applies to files without a specific policy.
	Policy string

	// Exclude lists extra exclude patterns, appended to the built-ins.
	Exclude []string

	// Policies maps source-relative paths to policy names.
	Policies map[string]string
}

// ManifestConfig locates the plugin manifests.
type ManifestConfig struct {
	// Paths are manifest files, relative to Source unless absolute.
	Paths []string

	// Profile is the profile applied to loaded manifests. Empty means
	// the manifest as declared.
	Profile string
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	// Level is the verbosity level ("debug", "info", "warn", "error").
	Level string
}

// Paths returns the path settings with ~ expanded and the state file
// resolved against the source root.
func (c *Config) Paths() PathsConfig {
	p := PathsConfig{
		Source: expandHome(c.getStringOr("paths.source", ".")),
		Target: expandHome(c.getStringOr("paths.target", "~")),
		State:  expandHome(c.getStringOr("paths.state", ".sync_state.json")),
	}
	if !filepath.IsAbs(p.State) {
		p.State = filepath.Join(p.Source, p.State)
	}
	return p
}

// Sync returns the sync engine settings.
func (c *Config) Sync() SyncConfig {
	return SyncConfig{
		Policy:   c.getStringOr("sync.policy", "overwrite"),
		Exclude:  c.getStringSliceOr("sync.exclude", nil),
		Policies: c.getStringMapOr("sync.policies", nil),
	}
}

// Manifest returns the manifest settings with paths resolved against
// the source root.
func (c *Config) Manifest() ManifestConfig {
	source := c.Paths().Source
	paths := c.getStringSliceOr("manifest.paths", nil)
	for i, p := range paths {
		expanded := expandHome(p)
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(source, expanded)
		}
		paths[i] = expanded
	}
	return ManifestConfig{
		Paths:   paths,
		Profile: c.getStringOr("manifest.profile", ""),
	}
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
	}
}

func (c *Config) getStringOr(path, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		result := make([]string, len(defaultValue))
		copy(result, defaultValue)
		return result
	}
	return v
}

func (c *Config) getStringMapOr(path string, defaultValue map[string]string) map[string]string {
	v, err := c.GetStringMap(path)
	if err != nil {
		result := make(map[string]string, len(defaultValue))
		for k, val := range defaultValue {
			result[k] = val
		}
		return result
	}
	return v
}

// expandHome resolves a leading ~ against the user's home directory.
// Unresolvable values pass through unchanged.
func expandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && path[1] == '/'
}
