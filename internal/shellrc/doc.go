// Package shellrc models the interactive shell initializer: the aliases,
// exports, functions, and conditional source guards a session defines at
// startup, and the rendering of that model to shell text.
//
// The model is declarative on purpose. Every record renders as a definition
// (alias X=..., export X=..., X() {...}), never as an accumulation, so
// sourcing the rendered script twice leaves the session in the same state as
// sourcing it once. Validate rejects records that would break this, such as
// an export whose value references its own name.
//
// # Default contract
//
// DefaultScript returns the fixed session contract:
//
//   - source /etc/bashrc when it exists (silent no-op otherwise)
//   - aliases: ls, ll, df, du, cls, vi
//   - the cl function: change directory, short-circuit on failure, else list
//   - exports: CURRENT_UID, CURRENT_GID, CURRENT_NAME, CURRENT_GROUPS
//     computed from the id utility, and EDITOR pinned to vim
//
// Render the script for a target file or terminal:
//
//	s := shellrc.DefaultScript()
//	if err := s.Render(os.Stdout); err != nil {
//	    ...
//	}
//
// The rendered text is deterministic: fixed section order, declaration order
// within sections.
package shellrc
