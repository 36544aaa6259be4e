// Package manifest models the editor plugin manifest: an ordered list of
// plugin descriptors, with optional named profiles deriving per-machine
// variants from the same list.
//
// A descriptor tells the external plugin loader what to fetch and when.
// Plugins load lazily unless marked eager; eager loads are ordered by
// priority (higher first, declaration order breaking ties). Each descriptor
// carries an opaque options payload handed to the plugin's setup, and an
// activate flag that applies the plugin after setup. The flag pair replaces
// the older imperative configure-then-apply procedure: a legacy
// `config = function() ... end` entry decodes as Activate = true.
//
// # Formats
//
// Manifests load from Lua or YAML, dispatched by file extension. The Lua
// form is the loader-native spec list, evaluated in a sandboxed interpreter:
//
//	return {
//	    { "folke/tokyonight.nvim", lazy = false, priority = 1000,
//	      opts = { style = "night" }, activate = true },
//	    { "nvim-lualine/lualine.nvim" },
//	}
//
// A structured form adds profiles:
//
//	return {
//	    plugins = { ... },
//	    profiles = {
//	        light = {
//	            { "folke/tokyonight.nvim", opts = { style = "day" } },
//	        },
//	    },
//	}
//
// The YAML form mirrors the structured table with plugins/profiles keys, or
// a bare descriptor list.
//
// # Profiles
//
// A profile is a set of per-identifier field overrides. Applying one yields
// a derived manifest; it never adds descriptors. One manifest plus profiles
// replaces near-duplicate manifest copies, and Diff reports the divergence
// between two copies that have already drifted.
package manifest
