// Package config loads the kestrel configuration.
//
// # Layers
//
// Configuration is merged from layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← KESTREL_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/kestrel/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Flags are applied by the caller on the returned Config.
//
// # File Format
//
//	@include = ["keys.toml"]
//
//	[input]
//	chord_timeout = "1s"
//	pending_capacity = 8
//	initial_mode = "normal"
//
//	[log]
//	level = "info"
//	file = "~/.cache/kestrel/kestrel.log"
//
//	[keymap]
//	files = ["vim.yaml"]
//	scripts = ["keys.lua"]
//
//	[[keymap.bind]]
//	mode = "insert"
//	keys = "j k"
//	action = "mode.normal"
//
//	[theme]
//	status_fg = "#e0e0e0"
//	status_bg = "#3a3a5c"
//	pending_fg = "#f0c674"
//
// YAML files with the same structure are accepted.
//
// # Sub-packages
//
//   - loader: file and environment loading into generic maps
//   - watcher: fsnotify-based change notification for live reload
package config
