// Package envctx carries the session identity as an explicit context
// object instead of ambient process globals.
//
// A Context is built once from the system identity database (uid, gid,
// username, group list) plus the pinned editor, and is immutable after
// construction. Subprocesses receive the values through Environ or
// Command rather than by mutating the parent environment, so nothing
// outside the spawned process observes them.
package envctx
