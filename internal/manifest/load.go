package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a manifest file, dispatching on the file extension.
// Lua manifests are evaluated in the sandboxed interpreter; YAML manifests
// are decoded directly.
func Load(ctx context.Context, path string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return LoadLua(ctx, path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
