package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPrefix is the environment variable prefix for dotkit settings.
const DefaultPrefix = "DOTKIT_"

// EnvLoader loads configuration from environment variables. Explicitly
// mapped names take their configured paths; any other variable carrying
// the prefix maps positionally, DOTKIT_SYNC_POLICY becoming sync.policy.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
}

// NewEnvLoader creates an environment loader with the dotkit mapping.
// The prefix includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

// NewEnvLoaderWithMapping creates a loader with a custom mapping.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

// defaultEnvMapping covers the settings whose names do not split into
// section and key along underscores.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"DOTKIT_SOURCE":    "paths.source",
		"DOTKIT_TARGET":    "paths.target",
		"DOTKIT_STATE":     "paths.state",
		"DOTKIT_POLICY":    "sync.policy",
		"DOTKIT_EXCLUDE":   "sync.exclude",
		"DOTKIT_MANIFESTS": "manifest.paths",
		"DOTKIT_PROFILE":   "manifest.profile",
		"DOTKIT_LOG_LEVEL": "logging.level",
	}
}

// Load reads environment variables into a configuration map. Empty
// string values are valid values, not unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}

		setByPath(config, l.envToPath(name), parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts DOTKIT_SYNC_POLICY to sync.policy. The first
// underscore-separated part after the prefix is the section; the rest
// joins in camelCase.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")

	result := make([]string, 0, 2)
	result = append(result, strings.ToLower(parts[0]))

	if len(parts) > 1 {
		key := strings.ToLower(parts[1])
		for _, part := range parts[2:] {
			if len(part) > 0 {
				key += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
			}
		}
		result = append(result, key)
	}

	return strings.Join(result, ".")
}

// parseValue coerces an environment string: booleans, integers,
// durations, and comma-separated lists; everything else stays a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	// Exclude patterns and manifest lists arrive comma-separated.
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				list = append(list, trimmed)
			}
		}
		return list
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
