package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"dotkit/internal/state"
)

// Reason explains why a file made it into a plan.
type Reason string

const (
	ReasonNewFile       Reason = "new file, never synced"
	ReasonSourceChanged Reason = "source modified since last sync"
	ReasonTargetMissing Reason = "target missing"
	ReasonPolicyUnmet   Reason = "target does not satisfy policy condition"
)

// Action is one planned file write.
type Action struct {
	Source string // absolute path under the source root
	Target string // absolute path under the target root
	Rel    string // slash-separated path relative to the source root
	Policy Policy
	Reason Reason
	Hash   string // SHA-256 of the source content at plan time
}

// Plan lists the files a run would write, in walk order.
type Plan struct {
	Actions []Action
	Checked int // files examined after exclusion
}

// Empty reports whether the plan has no pending actions.
func (p *Plan) Empty() bool { return len(p.Actions) == 0 }

// Plan walks the source tree and decides, per file, whether it needs
// to be written and why. The state file provides the last-synced
// hashes.
func (s *Syncer) Plan(ctx context.Context) (*Plan, error) {
	store, err := state.Load(s.statePath)
	if err != nil {
		return nil, err
	}
	return s.plan(ctx, store)
}

func (s *Syncer) plan(ctx context.Context, store *state.Store) (*Plan, error) {
	plan := &Plan{}
	err := filepath.WalkDir(s.source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.source, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && s.excludes.MatchDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if p == s.statePath || s.excludes.Match(rel) {
			return nil
		}

		plan.Checked++
		action, needed, err := s.decide(p, rel, store)
		if err != nil {
			return err
		}
		if needed {
			plan.Actions = append(plan.Actions, action)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("planned sync pass",
		zap.Int("checked", plan.Checked),
		zap.Int("pending", len(plan.Actions)))
	return plan, nil
}

// decide runs the need-to-sync checks in order: unseen source, source
// drift, missing target, then the policy's expected condition.
func (s *Syncer) decide(source, rel string, store *state.Store) (Action, bool, error) {
	hash, err := FileHash(source)
	if err != nil {
		return Action{}, false, err
	}
	action := Action{
		Source: source,
		Target: filepath.Join(s.target, filepath.FromSlash(rel)),
		Rel:    rel,
		Policy: s.policyFor(rel),
		Hash:   hash,
	}

	entry, known := store.Get(source)
	switch {
	case !known:
		action.Reason = ReasonNewFile
		return action, true, nil
	case entry.Hash != hash:
		action.Reason = ReasonSourceChanged
		return action, true, nil
	}

	if _, err := os.Stat(action.Target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			action.Reason = ReasonTargetMissing
			return action, true, nil
		}
		return Action{}, false, fmt.Errorf("syncer: stat %s: %w", action.Target, err)
	}

	ok, err := policySatisfied(action.Policy, source, action.Target, hash)
	if err != nil {
		return Action{}, false, err
	}
	if !ok {
		action.Reason = ReasonPolicyUnmet
		return action, true, nil
	}
	return Action{}, false, nil
}

func (s *Syncer) policyFor(rel string) Policy {
	if p, ok := s.policies[rel]; ok {
		return p
	}
	return s.defaultPolicy
}

// policySatisfied checks the condition a synced target must hold: hash
// equality for overwrite and append, the source statement at line two
// for prepend-source.
func policySatisfied(policy Policy, source, target, sourceHash string) (bool, error) {
	if policy == PolicyPrependSource {
		return hasSourceStatement(target, source)
	}
	targetHash, err := FileHash(target)
	if err != nil {
		return false, err
	}
	return targetHash == sourceHash, nil
}
