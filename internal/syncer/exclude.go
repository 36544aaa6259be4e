package syncer

import (
	"path"
	"path/filepath"
	"strings"
)

// DefaultExcludePatterns name the files that are never copied out of a
// configuration repository: VCS internals, the tool's own files, and
// the scratch target used by debug runs.
var DefaultExcludePatterns = []string{
	".git/",
	"debug_home/",
	".gitignore",
	".sync_state.json",
	"dotkit.toml",
	"README.md",
}

// ExcludeSet matches source-relative paths against exclude patterns.
//
// A pattern ending in "/" names a directory and matches when any
// directory component of the path equals it. Any other pattern is a
// glob matched against the trailing path components, or against the
// base name alone when the pattern has no separator.
type ExcludeSet struct {
	patterns []string
}

// NewExcludeSet returns a set holding the default patterns plus extra.
func NewExcludeSet(extra ...string) *ExcludeSet {
	e := &ExcludeSet{patterns: append([]string(nil), DefaultExcludePatterns...)}
	e.Add(extra...)
	return e
}

// Add appends patterns to the set. Blank entries are ignored.
func (e *ExcludeSet) Add(patterns ...string) {
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			e.patterns = append(e.patterns, p)
		}
	}
}

// Match reports whether the file at rel, relative to the source root,
// is excluded.
func (e *ExcludeSet) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range e.patterns {
		if name, ok := strings.CutSuffix(pattern, "/"); ok {
			if containsComponent(path.Dir(rel), name) {
				return true
			}
			continue
		}
		if matchTail(pattern, rel) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the directory at rel is excluded, letting
// tree walks prune whole subtrees.
func (e *ExcludeSet) MatchDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range e.patterns {
		name, ok := strings.CutSuffix(pattern, "/")
		if ok && containsComponent(rel, name) {
			return true
		}
	}
	return false
}

func containsComponent(p, name string) bool {
	for _, part := range strings.Split(p, "/") {
		if part == name {
			return true
		}
	}
	return false
}

// matchTail matches right-anchored: a pattern without a separator is
// checked against the base name, one with separators against the same
// number of trailing components.
func matchTail(pattern, rel string) bool {
	if !strings.Contains(pattern, "/") {
		ok, err := path.Match(pattern, path.Base(rel))
		return err == nil && ok
	}
	pparts := strings.Split(pattern, "/")
	rparts := strings.Split(rel, "/")
	if len(pparts) > len(rparts) {
		return false
	}
	rparts = rparts[len(rparts)-len(pparts):]
	for i := range pparts {
		ok, err := path.Match(pparts[i], rparts[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}
