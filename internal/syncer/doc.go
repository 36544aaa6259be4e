// Package syncer copies a personal configuration tree into a target
// root, usually the home directory.
//
// A run has two halves. The planner walks the source tree, drops
// excluded paths, and decides per file whether it must be written:
// files never synced before, files whose content drifted since the
// recorded hash, files whose target vanished, and files whose target
// no longer satisfies their policy. The applier then stages every
// accepted write to a temp file beside its target and renames the
// staged files only after all of them were written cleanly, so a
// failed run leaves every target untouched.
//
// Three policies cover the usual dotfile arrangements: overwrite
// replaces the target, append adds the source text after the target's
// own content, and prepend-source keeps the target but makes its
// second line source the managed copy, which suits .bashrc and .zshrc.
//
// Applied writes are recorded in a JSON state file (see package state)
// keyed by absolute source path, so later runs can skip files that are
// still in sync. Watch mode re-runs the pass when the source tree
// changes, debounced to absorb editor save bursts.
package syncer
