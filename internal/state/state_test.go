package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func testEntry() Entry {
	return Entry{
		Hash:     "deadbeef",
		SyncedAt: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		Reason:   "new file",
		RunID:    "8a2b4c6d",
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), ".sync_state.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !s.Empty() {
		t.Error("missing file did not load as empty state")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sync_state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Load() error = %v, want %v", err, ErrMalformed)
	}
}

func TestRecordAndGet(t *testing.T) {
	s := &Store{raw: []byte("{}")}

	source := "/home/dev/configs/.bashrc"
	if err := s.Record(source, testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, ok := s.Get(source)
	if !ok {
		t.Fatal("Get() did not find recorded entry")
	}
	want := testEntry()
	if got.Hash != want.Hash {
		t.Errorf("Hash = %q, want %q", got.Hash, want.Hash)
	}
	if !got.SyncedAt.Equal(want.SyncedAt) {
		t.Errorf("SyncedAt = %v, want %v", got.SyncedAt, want.SyncedAt)
	}
	if got.Reason != want.Reason {
		t.Errorf("Reason = %q, want %q", got.Reason, want.Reason)
	}
	if got.RunID != want.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, want.RunID)
	}

	if _, ok := s.Get("/home/dev/configs/.vimrc"); ok {
		t.Error("Get() found entry for unrecorded path")
	}
}

// Dots in file names must not fragment the JSON key.
func TestDottedKeysStayWhole(t *testing.T) {
	s := &Store{raw: []byte("{}")}

	if err := s.Record("/cfg/.config.d/app.conf", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	sources := s.Sources()
	if len(sources) != 1 || sources[0] != "/cfg/.config.d/app.conf" {
		t.Errorf("Sources() = %v, want the single dotted path", sources)
	}
}

func TestRecordPreservesUnknownFields(t *testing.T) {
	seed := `{
    "/cfg/.bashrc": {
        "hash": "oldhash",
        "synced_at": "2023-01-01T00:00:00Z",
        "reason": "new file",
        "run_id": "1111",
        "annotations": {"owner": "setup-script"},
        "attempts": 3
    }
}`
	s := &Store{raw: []byte(seed)}

	if err := s.Record("/cfg/.bashrc", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, _ := s.Get("/cfg/.bashrc")
	if got.Hash != "deadbeef" {
		t.Errorf("Hash = %q, want updated hash", got.Hash)
	}

	doc := gjson.ParseBytes(s.raw)
	if owner := doc.Get(`/cfg/\.bashrc.annotations.owner`); owner.String() != "setup-script" {
		t.Errorf("annotations.owner = %q, unknown field lost", owner.String())
	}
	if attempts := doc.Get(`/cfg/\.bashrc.attempts`); attempts.Int() != 3 {
		t.Errorf("attempts = %d, unknown field lost", attempts.Int())
	}
}

func TestSourcesSorted(t *testing.T) {
	s := &Store{raw: []byte("{}")}
	for _, p := range []string{"/cfg/zsh", "/cfg/.bashrc", "/cfg/nvim/init.lua"} {
		if err := s.Record(p, testEntry()); err != nil {
			t.Fatalf("Record(%s) error = %v", p, err)
		}
	}

	got := s.Sources()
	want := []string{"/cfg/.bashrc", "/cfg/nvim/init.lua", "/cfg/zsh"}
	if len(got) != len(want) {
		t.Fatalf("Sources() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sources()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sync_state.json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.Record("/cfg/.vimrc", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "\n    \"") {
		t.Error("saved state is not indented")
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	got, ok := reloaded.Get("/cfg/.vimrc")
	if !ok || got.Hash != "deadbeef" {
		t.Errorf("reloaded entry = %+v, ok=%v", got, ok)
	}
}

func TestClear(t *testing.T) {
	s := &Store{raw: []byte("{}")}
	if err := s.Record("/cfg/.bashrc", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	s.Clear()
	if !s.Empty() {
		t.Error("Clear() left entries behind")
	}
}

func TestRemove(t *testing.T) {
	s := &Store{raw: []byte("{}")}
	if err := s.Record("/cfg/.bashrc", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Record("/cfg/.vimrc", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if err := s.Remove("/cfg/.bashrc"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, ok := s.Get("/cfg/.bashrc"); ok {
		t.Error("removed entry still present")
	}
	if _, ok := s.Get("/cfg/.vimrc"); !ok {
		t.Error("Remove() dropped an unrelated entry")
	}
}

func TestQuery(t *testing.T) {
	s := &Store{raw: []byte("{}")}
	if err := s.Record("/cfg/.bashrc", testEntry()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, ok := s.Query(`/cfg/\.bashrc.hash`)
	if !ok {
		t.Fatal("Query() did not find hash")
	}
	if got != "deadbeef" {
		t.Errorf("Query(hash) = %q, want deadbeef", got)
	}

	obj, ok := s.Query(`/cfg/\.bashrc`)
	if !ok {
		t.Fatal("Query() did not find entry object")
	}
	if !strings.Contains(obj, `"hash"`) || !strings.Contains(obj, "\n") {
		t.Errorf("Query(entry) = %q, want indented object", obj)
	}

	if _, ok := s.Query("absent.path"); ok {
		t.Error("Query() reported a hit for an absent path")
	}
}
