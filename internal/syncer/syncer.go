package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dotkit/internal/state"
)

// ErrSourceNotDir is returned by New when the source path exists but
// is not a directory.
var ErrSourceNotDir = errors.New("syncer: source is not a directory")

// Syncer copies a configuration tree into a target root, one policy
// per file, with confirmation prompts and a state file remembering
// what was synced.
type Syncer struct {
	source    string
	target    string
	statePath string

	defaultPolicy Policy
	policies      map[string]Policy
	excludes      *ExcludeSet

	prompter Prompter
	force    bool
	dryRun   bool

	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithDefaultPolicy sets the policy used when no per-path policy
// matches.
func WithDefaultPolicy(p Policy) Option {
	return func(s *Syncer) { s.defaultPolicy = p }
}

// WithPolicies adds per-path policies keyed by source-relative path.
func WithPolicies(policies map[string]Policy) Option {
	return func(s *Syncer) {
		for rel, p := range policies {
			s.policies[filepath.ToSlash(rel)] = p
		}
	}
}

// WithExcludes appends exclude patterns to the built-in set.
func WithExcludes(patterns ...string) Option {
	return func(s *Syncer) { s.excludes.Add(patterns...) }
}

// WithPrompter replaces the interactive prompter.
func WithPrompter(p Prompter) Option {
	return func(s *Syncer) { s.prompter = p }
}

// WithForce skips all confirmation prompts.
func WithForce(force bool) Option {
	return func(s *Syncer) { s.force = force }
}

// WithDryRun plans without writing files or state.
func WithDryRun(dryRun bool) Option {
	return func(s *Syncer) { s.dryRun = dryRun }
}

// WithLogger attaches a logger; the syncer logs under the "syncer"
// name.
func WithLogger(l *zap.Logger) Option {
	return func(s *Syncer) { s.logger = l.Named("syncer") }
}

// WithClock overrides the timestamp source for state entries.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

// New builds a Syncer for the given source tree, target root, and
// state file. The source must be an existing directory; all three
// paths are resolved to absolute form so source statements and state
// keys stay stable across working directories.
func New(source, target, statePath string, opts ...Option) (*Syncer, error) {
	source, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("syncer: resolve source: %w", err)
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("syncer: resolve target: %w", err)
	}
	statePath, err = filepath.Abs(statePath)
	if err != nil {
		return nil, fmt.Errorf("syncer: resolve state path: %w", err)
	}

	fi, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("syncer: source %s: %w", source, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotDir, source)
	}

	s := &Syncer{
		source:        source,
		target:        target,
		statePath:     statePath,
		defaultPolicy: PolicyOverwrite,
		policies:      make(map[string]Policy),
		excludes:      NewExcludeSet(),
		logger:        zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prompter == nil {
		s.prompter = NewTerminalPrompter(os.Stdin, os.Stdout)
	}
	return s, nil
}

// Source returns the absolute source root.
func (s *Syncer) Source() string { return s.source }

// Target returns the absolute target root.
func (s *Syncer) Target() string { return s.target }

// StatePath returns the absolute state file path.
func (s *Syncer) StatePath() string { return s.statePath }

// Result summarizes one sync run.
type Result struct {
	RunID    string
	Plan     *Plan
	Applied  []Action
	Declined []Action
	DryRun   bool
}

// Run plans and applies one pass. Dry runs stop after planning. The
// result lists what was applied and what the user declined.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	store, err := state.Load(s.statePath)
	if err != nil {
		return nil, err
	}
	plan, err := s.plan(ctx, store)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString(), Plan: plan, DryRun: s.dryRun}
	if s.dryRun || plan.Empty() {
		return result, nil
	}
	if err := s.apply(ctx, plan, store, result); err != nil {
		return nil, err
	}
	return result, nil
}
