package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformed indicates the state file is not valid JSON.
var ErrMalformed = errors.New("state: malformed state file")

// indent matches the on-disk indentation of the legacy state files.
const indent = "    "

// Entry records one source file's last sync.
type Entry struct {
	Hash     string    `json:"hash"`
	SyncedAt time.Time `json:"synced_at"`
	Reason   string    `json:"reason"`
	RunID    string    `json:"run_id"`
}

// Store is the sync state document bound to its file path. Updates are
// per-field JSON edits; unknown fields in existing entries survive.
type Store struct {
	path string
	raw  []byte
}

// Load reads the state file. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Store{path: path, raw: []byte("{}")}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, path)
	}

	return &Store{path: path, raw: data}, nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Empty reports whether the store has no entries.
func (s *Store) Empty() bool {
	return len(s.Sources()) == 0
}

// Sources returns the recorded source paths in sorted order.
func (s *Store) Sources() []string {
	var sources []string
	gjson.ParseBytes(s.raw).ForEach(func(key, _ gjson.Result) bool {
		sources = append(sources, key.String())
		return true
	})
	sort.Strings(sources)
	return sources
}

// Get returns the entry recorded for a source path.
func (s *Store) Get(source string) (Entry, bool) {
	result := gjson.GetBytes(s.raw, escapeKey(source))
	if !result.Exists() || !result.IsObject() {
		return Entry{}, false
	}

	e := Entry{
		Hash:   result.Get("hash").String(),
		Reason: result.Get("reason").String(),
		RunID:  result.Get("run_id").String(),
	}
	if ts := result.Get("synced_at").String(); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.SyncedAt = t
		}
	}
	return e, true
}

// Record writes an entry for a source path, field by field. Fields the
// entry does not own are left as they are.
func (s *Store) Record(source string, e Entry) error {
	raw := s.raw
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	key := escapeKey(source)
	var err error
	set := func(field string, value any) {
		if err != nil {
			return
		}
		raw, err = sjson.SetBytes(raw, key+"."+field, value)
	}

	set("hash", e.Hash)
	set("synced_at", e.SyncedAt.Format(time.RFC3339))
	set("reason", e.Reason)
	set("run_id", e.RunID)
	if err != nil {
		return fmt.Errorf("state: record %s: %w", source, err)
	}

	s.raw = raw
	return nil
}

// Remove deletes the entry for a source path.
func (s *Store) Remove(source string) error {
	raw, err := sjson.DeleteBytes(s.raw, escapeKey(source))
	if err != nil {
		return fmt.Errorf("state: remove %s: %w", source, err)
	}
	s.raw = raw
	return nil
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.raw = []byte("{}")
}

// Query evaluates a dotted path against the document and returns the
// result rendered for display: scalars bare, objects and arrays as
// indented JSON. Literal dots in file-name keys are escaped with a
// backslash.
func (s *Store) Query(path string) (string, bool) {
	result := gjson.GetBytes(s.raw, path)
	if !result.Exists() {
		return "", false
	}
	if result.IsObject() || result.IsArray() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(result.Raw), "", indent); err != nil {
			return result.Raw, true
		}
		return buf.String(), true
	}
	return result.String(), true
}

// Pretty returns the document as indented JSON.
func (s *Store) Pretty() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, s.raw, "", indent); err != nil {
		return nil, fmt.Errorf("state: format: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document back to its file, indented.
func (s *Store) Save() error {
	pretty, err := s.Pretty()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, append(pretty, '\n'), 0o644); err != nil {
		return fmt.Errorf("state: write %s: %w", s.path, err)
	}
	return nil
}

// escapeKey makes a file path safe to use as a single path element:
// dots, wildcards, and pipes would otherwise act as query syntax.
func escapeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
