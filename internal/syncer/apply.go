package syncer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dotkit/internal/state"
)

// sourceHeader is the comment written above the source statement by
// the prepend-source policy.
const sourceHeader = "# Source personal configs"

// tmpInfix marks staged files awaiting the commit rename.
const tmpInfix = ".tmp_sync."

// SyncError reports a failure while staging or committing one file.
type SyncError struct {
	Path   string // source-relative path
	Policy Policy
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("syncer: %s (policy %s): %v", e.Path, e.Policy, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// stagedFile pairs an action with its staged temp file. An empty tmp
// means no write is needed: the target already holds the wanted
// content, but the file still counts as applied for state recording.
type stagedFile struct {
	action Action
	tmp    string
}

// apply stages every accepted action to a temp file beside its target,
// renames them all once staging finished cleanly, then records state.
// Any error removes the remaining temp files so a failed run leaves no
// droppings behind.
func (s *Syncer) apply(ctx context.Context, plan *Plan, store *state.Store, result *Result) (err error) {
	staged := make([]stagedFile, 0, len(plan.Actions))
	defer func() {
		if err == nil {
			return
		}
		for _, sf := range staged {
			if sf.tmp != "" {
				_ = os.Remove(sf.tmp)
			}
		}
	}()

	for _, action := range plan.Actions {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		sf, accepted, serr := s.stage(action, result.RunID)
		if serr != nil {
			return &SyncError{Path: action.Rel, Policy: action.Policy, Err: serr}
		}
		if !accepted {
			result.Declined = append(result.Declined, action)
			continue
		}
		staged = append(staged, sf)
	}

	for _, sf := range staged {
		if sf.tmp == "" {
			continue
		}
		if rerr := os.Rename(sf.tmp, sf.action.Target); rerr != nil {
			return &SyncError{Path: sf.action.Rel, Policy: sf.action.Policy, Err: rerr}
		}
	}

	now := s.now()
	for _, sf := range staged {
		a := sf.action
		entry := state.Entry{Hash: a.Hash, SyncedAt: now, Reason: string(a.Reason), RunID: result.RunID}
		if rerr := store.Record(a.Source, entry); rerr != nil {
			return rerr
		}
		result.Applied = append(result.Applied, a)
		s.logger.Info("synced",
			zap.String("target", a.Target),
			zap.String("policy", string(a.Policy)),
			zap.String("reason", string(a.Reason)))
	}
	if len(result.Applied) > 0 {
		if serr := store.Save(); serr != nil {
			return fmt.Errorf("syncer: save state: %w", serr)
		}
	}
	return nil
}

// stage prompts when needed and writes the policy-derived content to a
// temp file beside the target. accepted is false when the user
// declined the file.
func (s *Syncer) stage(action Action, runID string) (sf stagedFile, accepted bool, err error) {
	sf = stagedFile{action: action}

	exists := true
	if _, err := os.Stat(action.Target); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return sf, false, err
		}
		exists = false
	}

	if !s.force {
		ok, err := s.confirm(action, exists)
		if err != nil {
			return sf, false, err
		}
		if !ok {
			s.logger.Info("declined", zap.String("target", action.Target))
			return sf, false, nil
		}
	}

	content, write, err := stageContent(action, exists)
	if err != nil {
		return sf, false, err
	}
	if !write {
		return sf, true, nil
	}

	if err := os.MkdirAll(filepath.Dir(action.Target), 0o755); err != nil {
		return sf, false, err
	}
	tmp := action.Target + tmpInfix + runID
	if err := os.WriteFile(tmp, content, fileMode(action.Source, action.Target, exists)); err != nil {
		return sf, false, err
	}
	sf.tmp = tmp
	return sf, true, nil
}

func (s *Syncer) confirm(action Action, targetExists bool) (bool, error) {
	if targetExists {
		return s.prompter.Confirm(fmt.Sprintf("%s to existing file: %s? (y/n): ",
			titleCase(string(action.Policy)), action.Target))
	}
	return s.prompter.Confirm(fmt.Sprintf("Target file does not exist. Create %s and copy content? (y/n): ",
		action.Target))
}

// stageContent materializes the bytes the policy wants in the target.
// write is false when the target already holds the wanted content.
func stageContent(action Action, targetExists bool) (content []byte, write bool, err error) {
	src, err := os.ReadFile(action.Source)
	if err != nil {
		return nil, false, err
	}

	switch action.Policy {
	case PolicyAppend:
		if !targetExists {
			return src, true, nil
		}
		orig, err := os.ReadFile(action.Target)
		if err != nil {
			return nil, false, err
		}
		var buf bytes.Buffer
		buf.Write(orig)
		buf.WriteString("\n\n")
		buf.Write(src)
		return buf.Bytes(), true, nil

	case PolicyPrependSource:
		if !targetExists {
			return []byte(prependBlock(action.Source)), true, nil
		}
		ok, err := hasSourceStatement(action.Target, action.Source)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return nil, false, nil
		}
		orig, err := os.ReadFile(action.Target)
		if err != nil {
			return nil, false, err
		}
		var buf bytes.Buffer
		buf.WriteString(prependBlock(action.Source))
		buf.WriteString("\n")
		buf.Write(orig)
		return buf.Bytes(), true, nil

	default:
		return src, true, nil
	}
}

func sourceStatement(source string) string {
	return fmt.Sprintf("source \"%s\"", source)
}

func prependBlock(source string) string {
	return sourceHeader + "\n" + sourceStatement(source) + "\n"
}

// hasSourceStatement reports whether line two of the target already
// sources the managed file.
func hasSourceStatement(target, source string) (bool, error) {
	b, err := os.ReadFile(target)
	if err != nil {
		return false, err
	}
	lines := strings.Split(string(b), "\n")
	if len(lines) < 2 {
		return false, nil
	}
	return lines[1] == sourceStatement(source), nil
}

// fileMode keeps the target's permissions when rewriting it and copies
// the source's otherwise, so executable scripts stay executable.
func fileMode(source, target string, targetExists bool) fs.FileMode {
	if targetExists {
		if fi, err := os.Stat(target); err == nil {
			return fi.Mode().Perm()
		}
	}
	if fi, err := os.Stat(source); err == nil {
		return fi.Mode().Perm()
	}
	return 0o644
}

// titleCase upper-cases the first byte for prompt messages.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
