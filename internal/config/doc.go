// Package config loads dotkit's tool configuration.
//
// Configuration merges three layers, later layers winning: built-in
// defaults, the dotkit.toml file at the source root, and DOTKIT_*
// environment variables. A missing file is not an error; the defaults
// describe a dotfiles repo synced from the current directory into the
// user's home.
//
// Section accessors (Paths, Sync, Manifest, Logging) return snapshot
// structs with defaults applied. A Config is immutable once Load
// returns; snapshots may be retained freely.
package config
