package syncer

import "testing"

func TestExcludeDefaults(t *testing.T) {
	e := NewExcludeSet()

	tests := []struct {
		rel  string
		want bool
	}{
		{".git/config", true},
		{"nvim/.git/config", true},
		{"debug_home/.bashrc", true},
		{".gitignore", true},
		{"nvim/.gitignore", true},
		{".sync_state.json", true},
		{"dotkit.toml", true},
		{"README.md", true},
		{"docs/README.md", true},
		{".bashrc", false},
		{"nvim/init.lua", false},
		{"gitconfig", false},
	}

	for _, tt := range tests {
		if got := e.Match(tt.rel); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestExcludeExtraPatterns(t *testing.T) {
	e := NewExcludeSet("*.swp", "notes/", "tmux/*.local")

	tests := []struct {
		rel  string
		want bool
	}{
		{"x.swp", true},
		{"nvim/x.swp", true},
		{"notes/todo.md", true},
		{"work/notes/todo.md", true},
		{"notes.md", false},
		{"tmux/dev.local", true},
		{"home/tmux/dev.local", true},
		{"dev.local", false},
	}

	for _, tt := range tests {
		if got := e.Match(tt.rel); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestExcludeMatchDir(t *testing.T) {
	e := NewExcludeSet("notes/")

	tests := []struct {
		rel  string
		want bool
	}{
		{".git", true},
		{"nvim/.git", true},
		{"notes", true},
		{"nvim", false},
		// File patterns never prune directories.
		{"README.md", false},
	}

	for _, tt := range tests {
		if got := e.MatchDir(tt.rel); got != tt.want {
			t.Errorf("MatchDir(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestExcludeIgnoresBlankPatterns(t *testing.T) {
	e := NewExcludeSet("", "  ")
	if got, want := len(e.patterns), len(DefaultExcludePatterns); got != want {
		t.Errorf("patterns = %d, want %d", got, want)
	}
}
