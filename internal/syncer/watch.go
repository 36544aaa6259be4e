package syncer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDebounce groups editor save bursts into one run.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watch re-runs sync passes whenever the source tree changes, until
// ctx is done. Bursts of file events are debounced into a single run.
// Each run's outcome is handed to onRun when it is non-nil.
func (s *Syncer) Watch(ctx context.Context, debounce time.Duration, onRun func(*Result, error)) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("syncer: watch: %w", err)
	}
	defer fsw.Close()

	if err := s.watchTree(fsw, s.source); err != nil {
		return err
	}

	// Runs are serialized through the select loop so onRun never races
	// with event handling.
	runs := make(chan struct{}, 1)
	d := NewDebouncer(debounce, func() {
		select {
		case runs <- struct{}{}:
		default:
		}
	})
	defer d.Cancel()

	s.logger.Info("watching source tree", zap.String("source", s.source))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-runs:
			res, rerr := s.Run(ctx)
			if rerr != nil {
				s.logger.Warn("sync pass failed", zap.Error(rerr))
			}
			if onRun != nil {
				onRun(res, rerr)
			}

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if s.ignoreEvent(ev) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if fi, serr := os.Stat(ev.Name); serr == nil && fi.IsDir() {
					// Pick up directories created while watching.
					_ = s.watchTree(fsw, ev.Name)
				}
			}
			s.logger.Debug("source changed",
				zap.String("path", ev.Name),
				zap.String("op", ev.Op.String()))
			d.Call()

		case werr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", zap.Error(werr))
		}
	}
}

// watchTree adds root and every non-excluded subdirectory to the watch
// list. Unreadable subtrees are skipped.
func (s *Syncer) watchTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(s.source, p)
		if rerr == nil && rel != "." && s.excludes.MatchDir(filepath.ToSlash(rel)) {
			return fs.SkipDir
		}
		if werr := fsw.Add(p); werr != nil {
			return fmt.Errorf("syncer: watch %s: %w", p, werr)
		}
		return nil
	})
}

// ignoreEvent filters events that must not trigger a run: chmod-only
// noise, the artifacts a run itself writes, and excluded paths.
func (s *Syncer) ignoreEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	if ev.Name == s.statePath || strings.Contains(ev.Name, tmpInfix) {
		return true
	}
	rel, err := filepath.Rel(s.source, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	rel = filepath.ToSlash(rel)
	return s.excludes.Match(rel) || s.excludes.MatchDir(rel)
}
